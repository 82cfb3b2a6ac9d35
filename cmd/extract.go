package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/app"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/command"
	"go.uber.org/fx"
)

var (
	extractURL     string
	extractFile    string
	extractMax     int
	extractRefresh bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract posts from a company page and print them as JSON",
	Long: "extract reads the page markup from --file (or renders --url in the browser when no file is given) " +
		"and prints the extraction result.",
	RunE: extractAction,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether a page is an eligible company page",
	RunE:  checkAction,
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove expired cache entries and stale handoffs once",
	RunE:  sweepAction,
}

var prefetchCmd = &cobra.Command{
	Use:   "prefetch <url>...",
	Short: "Render several company pages in the browser and cache their posts",
	Args:  cobra.MinimumNArgs(1),
	RunE:  prefetchAction,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached source, handoff and media entry",
	RunE:  clearAction,
}

func init() {
	for _, c := range []*cobra.Command{extractCmd, checkCmd} {
		c.Flags().StringVar(&extractURL, "url", "", "company page URL")
		c.Flags().StringVar(&extractFile, "file", "", "saved page markup, - for stdin")
		_ = c.MarkFlagRequired("url")
	}
	extractCmd.Flags().IntVar(&extractMax, "max", 0, "maximum posts to return (0 uses the configured default)")
	extractCmd.Flags().BoolVar(&extractRefresh, "refresh", false, "ignore the cached result")
	prefetchCmd.Flags().IntVar(&extractMax, "max", 0, "maximum posts per page (0 uses the configured default)")

	rootCmd.AddCommand(extractCmd, checkCmd, prefetchCmd, sweepCmd, clearCmd)
}

// withClient starts the pipeline without the HTTP surface and runs fn against it.
func withClient(ctx context.Context, fn func(command.Client) error) error {
	var client command.Client
	application := fx.New(
		fx.NopLogger,
		app.Core,
		fx.Populate(&client),
	)
	if err := application.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer func() {
		if err := application.Stop(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "stop: %v\n", err)
		}
	}()
	return fn(client)
}

func readMarkup(path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func extractAction(cmd *cobra.Command, _ []string) error {
	markup, err := readMarkup(extractFile)
	if err != nil {
		return err
	}

	return withClient(cmd.Context(), func(c command.Client) error {
		req := command.ExtractRequest{URL: extractURL, HTML: markup, MaxPosts: extractMax}
		extract := c.ExtractPosts
		if extractRefresh {
			extract = c.RefreshPosts
		}

		res, err := extract(cmd.Context(), req)
		if err != nil && len(res.Posts) == 0 {
			return err
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
		return printJSON(cmd.OutOrStdout(), res)
	})
}

func checkAction(cmd *cobra.Command, _ []string) error {
	markup, err := readMarkup(extractFile)
	if err != nil {
		return err
	}

	return withClient(cmd.Context(), func(c command.Client) error {
		info, err := c.CheckSource(cmd.Context(), command.SourceRequest{URL: extractURL, HTML: markup})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), info)
	})
}

func prefetchAction(cmd *cobra.Command, args []string) error {
	return withClient(cmd.Context(), func(c command.Client) error {
		results, err := c.Prefetch(cmd.Context(), args, extractMax)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), results)
	})
}

func sweepAction(cmd *cobra.Command, _ []string) error {
	return withClient(cmd.Context(), func(c command.Client) error {
		report, err := c.Sweep(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), report)
	})
}

func clearAction(cmd *cobra.Command, _ []string) error {
	return withClient(cmd.Context(), func(c command.Client) error {
		n, err := c.ClearCache(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", n)
		return nil
	})
}
