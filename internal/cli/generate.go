package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/wheelsmith/internal/pipeline"
	"github.com/roach88/wheelsmith/internal/project"
	"github.com/roach88/wheelsmith/internal/render"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	ManifestPath string
	Output       string   // output file path, "-" for stdout
	Platforms    []string // repeatable --platform values
	Pytest       bool
	Zig          bool
}

// GenerateResult is the JSON success payload for the generate command.
type GenerateResult struct {
	Provider string `json:"provider"`
	Project  string `json:"project"`
	Output   string `json:"output"`
	Pipeline string `json:"pipeline,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <github|gitlab>",
		Short: "Generate a CI pipeline definition",
		Long: `Generate a CI pipeline definition for the given provider.

The bridge model, project name, and sdist support are resolved from
Cargo.toml and pyproject.toml; the pipeline is written to --output
(stdout by default).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.ManifestPath, "manifest-path", "m", "", "path to Cargo.toml")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "-", "output path, - for stdout")
	cmd.Flags().StringArrayVar(&opts.Platforms, "platform", nil, "platform to build for (repeatable; all, linux, musllinux, windows, macos, emscripten)")
	cmd.Flags().BoolVar(&opts.Pytest, "pytest", false, "run pytest against the built wheels")
	cmd.Flags().BoolVar(&opts.Zig, "zig", false, "use zig for manylinux cross compilation")

	return cmd
}

func runGenerate(opts *GenerateOptions, providerName string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	provider, err := render.ParseProvider(providerName)
	if err != nil {
		return outputGenerateError(formatter, ErrCodeBadProvider, err.Error())
	}

	platforms, err := parsePlatforms(opts.Platforms)
	if err != nil {
		return outputGenerateError(formatter, ErrCodeBadPlatform, err.Error())
	}

	meta, err := project.Resolve(opts.ManifestPath)
	if err != nil {
		code := ErrCodeManifest
		if errors.Is(err, project.ErrNoBridge) {
			code = ErrCodeNoBridge
		}
		return outputGenerateError(formatter, code, err.Error())
	}
	formatter.VerboseLog("Resolved project %q from %s", meta.Name, meta.ManifestPath)

	cfg := pipeline.NewConfig(meta.Bridge, meta.Name, platforms)
	cfg.Sdist = meta.Sdist
	cfg.Pytest = opts.Pytest
	cfg.Zig = opts.Zig
	cfg.ManifestPath = opts.ManifestPath
	cfg.InvokedWith = invokedWith(provider, opts)

	text, err := render.Generate(provider, cfg)
	if err != nil {
		return outputGenerateError(formatter, ErrCodeGeneric, err.Error())
	}

	result := &GenerateResult{
		Provider: string(provider),
		Project:  meta.Name,
		Output:   opts.Output,
	}

	if opts.Output == "-" {
		if formatter.Format == "json" {
			result.Pipeline = text
			return formatter.Success(result)
		}
		fmt.Fprint(formatter.Writer, text)
		return nil
	}

	if err := os.WriteFile(opts.Output, []byte(text), 0644); err != nil {
		return outputGenerateError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing %s: %v", opts.Output, err))
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "Wrote %s pipeline to %s\n", provider, opts.Output)
	return nil
}

// parsePlatforms converts --platform flag values. An empty list is valid
// and selects the default platform set downstream.
func parsePlatforms(names []string) ([]pipeline.Platform, error) {
	var platforms []pipeline.Platform
	for _, name := range names {
		p, err := pipeline.ParsePlatform(name)
		if err != nil {
			return nil, err
		}
		platforms = append(platforms, p)
	}
	return platforms, nil
}

// invokedWith reconstructs the regeneration command embedded in the
// generated file header. Built from parsed flags in a fixed order rather
// than echoing os.Args, so the hint is deterministic regardless of how the
// flags were spelled.
func invokedWith(provider render.Provider, opts *GenerateOptions) string {
	parts := []string{"wheelsmith", "generate", string(provider)}
	if opts.ManifestPath != "" {
		parts = append(parts, "--manifest-path", opts.ManifestPath)
	}
	for _, p := range opts.Platforms {
		parts = append(parts, "--platform", p)
	}
	if opts.Pytest {
		parts = append(parts, "--pytest")
	}
	if opts.Zig {
		parts = append(parts, "--zig")
	}
	return strings.Join(parts, " ")
}

// outputGenerateError reports a command-level error in the configured
// format and returns the matching exit error.
func outputGenerateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}
