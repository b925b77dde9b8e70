package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"videograb/internal/client"
	"videograb/internal/model"
	"videograb/internal/storage"
	"videograb/pkg/httpclient"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagList    bool
	flagQuality string
	flagServer  string
	flagOutput  string
)

var getCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "Resolve a video and download one of its formats",
	Args:  cobra.ExactArgs(1),
	RunE:  getRun,
}

func init() {
	getCmd.Flags().BoolVarP(&flagList, "list", "l", false, "List formats without downloading")
	getCmd.Flags().StringVarP(&flagQuality, "quality", "q", "", "Quality label to download (default: best)")
	getCmd.Flags().StringVarP(&flagServer, "server", "s", "", "videograb server url")
	getCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output directory")
}

// loadClientConfig merges defaults < config file < CLI flags.
func loadClientConfig() (*client.Config, error) {
	cfg, err := client.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagServer != "" {
		cfg.Server = flagServer
	}
	if flagOutput != "" {
		cfg.OutputDir = flagOutput
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadClientConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := client.New(cfg.Server, httpclient.New(0))
	if err != nil {
		return err
	}

	info, err := c.Fetch(ctx, args[0])
	if err != nil {
		return err
	}

	out := newPrinter(cmd.OutOrStdout())
	out.video(info)
	if flagList {
		return nil
	}

	format, err := pickFormat(info.Formats, flagQuality)
	if err != nil {
		return err
	}

	dir, err := cfg.ExpandOutputDir()
	if err != nil {
		return err
	}
	saved, err := storage.NewManager(dir).Save(info.Title, format.Quality, format.Format, func(w io.Writer) (int64, error) {
		return c.Download(ctx, format, w)
	})
	if err != nil {
		return fmt.Errorf("downloading %s: %w", format.Quality, err)
	}

	out.saved(saved)
	return nil
}

// pickFormat returns the format labelled quality, or the first one when
// quality is empty.
func pickFormat(formats []model.FormatOption, quality string) (model.FormatOption, error) {
	if quality == "" {
		return formats[0], nil
	}
	for _, f := range formats {
		if strings.EqualFold(f.Quality, quality) {
			return f, nil
		}
	}
	labels := make([]string, len(formats))
	for i, f := range formats {
		labels[i] = f.Quality
	}
	return model.FormatOption{}, fmt.Errorf("quality %q not available (have: %s)", quality, strings.Join(labels, ", "))
}

type printer struct {
	w     io.Writer
	title lipgloss.Style
	best  lipgloss.Style
	dim   lipgloss.Style
}

// newPrinter styles output only when w is a terminal.
func newPrinter(w io.Writer) *printer {
	p := &printer{
		w:     w,
		title: lipgloss.NewStyle(),
		best:  lipgloss.NewStyle(),
		dim:   lipgloss.NewStyle(),
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.title = p.title.Bold(true).Foreground(lipgloss.Color("12"))
		p.best = p.best.Bold(true).Foreground(lipgloss.Color("10"))
		p.dim = p.dim.Foreground(lipgloss.Color("8"))
	}
	return p
}

func (p *printer) video(info *model.VideoInfo) {
	fmt.Fprintln(p.w, p.title.Render(info.Title))
	if info.Duration != "" {
		fmt.Fprintln(p.w, p.dim.Render("Duration: "+info.Duration))
	}
	for i, f := range info.Formats {
		line := fmt.Sprintf("  %-14s %s", f.Quality, f.Format)
		if i == 0 {
			fmt.Fprintln(p.w, p.best.Render(line+"  BEST"))
			continue
		}
		fmt.Fprintln(p.w, line)
	}
}

func (p *printer) saved(f *storage.SavedFile) {
	fmt.Fprintf(p.w, "Saved %s %s\n", f.Path, p.dim.Render("("+humanize.Bytes(uint64(f.Size))+")"))
}
