// Package cli provides the command line interface.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/temirov/treepipe/internal/builder"
	"github.com/temirov/treepipe/internal/config"
	"github.com/temirov/treepipe/internal/output"
	"github.com/temirov/treepipe/internal/parser"
	"github.com/temirov/treepipe/internal/services/clipboard"
	"github.com/temirov/treepipe/internal/styles"
	"github.com/temirov/treepipe/internal/types"
	"github.com/temirov/treepipe/internal/utils"
	"github.com/temirov/treepipe/internal/walk"
)

const (
	inputModeFlagName   = "input-mode"
	inputModeFlagAlias  = "mode"
	colorFlagName       = "color"
	colorFlagAlias      = "colour"
	formatFlagName      = "format"
	copyFlagName        = "copy"
	versionFlagName     = "version"
	configFlagName      = "config"
	versionTemplate     = "treepipe version: %s\n"
	defaultWalkRootPath = "."

	rootUse              = "treepipe [path]"
	rootShortDescription = "display piped input as an indented tree"
	rootLongDescription  = `treepipe reads line-oriented text from stdin and renders it as a tree.
Input mode "normal" treats each line as a filesystem path; mode "grep" parses
"path:content" lines and annotates each path with its match count. Without -i
the filesystem under the optional path argument is walked directly.
Use --format to select raw, json, or xml output.`
	rootUsageExample = `  # Render find output as a tree
  find . -name '*.go' | treepipe -i

  # Summarize grep matches per file
  grep -rn TODO . | treepipe -i=grep

  # Walk the current directory without piped input
  treepipe`

	inputModeFlagDescription = "input type: none, normal (n), or grep (g); bare -i selects normal, otherwise use -i=<mode>"
	colorFlagDescription     = "color output: none or always"
	formatFlagDescription    = "output format: raw, json, or xml"
	copyFlagDescription      = "copy the rendered output to the system clipboard"
	versionFlagDescription   = "display application version"
	configFlagDescription    = "path to an explicit configuration file"

	baseStyleListEnvName     = "LS_COLORS"
	overrideStyleListEnvName = "TREE_COLORS"

	invalidModeFormat   = "invalid input mode value '%s'"
	invalidColorFormat  = "invalid color value '%s'"
	invalidFormatFormat = "invalid format value '%s'"
	// errorPathArgumentMessage rejects a path argument outside walk mode.
	errorPathArgumentMessage = "a path argument applies only when no input mode is selected"
	// errorReadInputFormat reports a failure while reading piped input.
	errorReadInputFormat = "reading input: %w"
	// errorCopyOutputFormat reports a clipboard copy failure.
	errorCopyOutputFormat = "copying output to clipboard: %w"
	// errorStyleTableFormat reports an unusable style list.
	errorStyleTableFormat = "building style table: %w"

	// maximumInputLineLength bounds a single input line in bytes.
	maximumInputLineLength = 1024 * 1024
)

// Execute runs the treepipe application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// rootOptions stores the flag values of the root command before resolution.
type rootOptions struct {
	inputMode   string
	colorMode   string
	format      string
	copyEnabled bool
	configPath  string
}

// runConfiguration is the fully resolved configuration the tool runs with.
type runConfiguration struct {
	mode           string
	format         string
	copyEnabled    bool
	walkRoot       string
	walkExclusions []string
	resolver       output.StyleResolver
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var options rootOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			configuration, resolveError := resolveConfiguration(command, arguments, options)
			if resolveError != nil {
				return resolveError
			}
			return runTreeTool(command.InOrStdin(), command.OutOrStdout(), clipboard.NewService(), configuration)
		},
	}

	rootCommand.Flags().SetNormalizeFunc(normalizeFlagAliases)
	rootCommand.Flags().StringVarP(&options.inputMode, inputModeFlagName, "i", types.ModeNone, inputModeFlagDescription)
	if inputModeFlag := rootCommand.Flags().Lookup(inputModeFlagName); inputModeFlag != nil {
		inputModeFlag.NoOptDefVal = types.ModeNormal
	}
	rootCommand.Flags().StringVarP(&options.colorMode, colorFlagName, "c", types.ColorAlways, colorFlagDescription)
	rootCommand.Flags().StringVar(&options.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	rootCommand.Flags().BoolVar(&options.copyEnabled, copyFlagName, false, copyFlagDescription)
	rootCommand.Flags().StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	return rootCommand
}

// normalizeFlagAliases maps the alternate long flag spellings onto the
// canonical flag names.
func normalizeFlagAliases(flagSet *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case inputModeFlagAlias:
		name = inputModeFlagName
	case colorFlagAlias:
		name = colorFlagName
	}
	return pflag.NormalizedName(name)
}

// resolveConfiguration merges configuration file defaults with explicit flags
// and validates every selector. Flags changed on the command line always win.
func resolveConfiguration(command *cobra.Command, arguments []string, options rootOptions) (runConfiguration, error) {
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return runConfiguration{}, loadError
	}

	modeSelector := options.inputMode
	if !command.Flags().Changed(inputModeFlagName) && applicationConfiguration.Mode != "" {
		modeSelector = applicationConfiguration.Mode
	}
	colorSelector := options.colorMode
	if !command.Flags().Changed(colorFlagName) && applicationConfiguration.Color != "" {
		colorSelector = applicationConfiguration.Color
	}
	formatSelector := options.format
	if !command.Flags().Changed(formatFlagName) && applicationConfiguration.Format != "" {
		formatSelector = applicationConfiguration.Format
	}
	copyEnabled := options.copyEnabled
	if !command.Flags().Changed(copyFlagName) && applicationConfiguration.Clipboard != nil {
		copyEnabled = *applicationConfiguration.Clipboard
	}

	canonicalMode, modeKnown := types.CanonicalMode(modeSelector)
	if !modeKnown {
		return runConfiguration{}, fmt.Errorf(invalidModeFormat, modeSelector)
	}
	canonicalColor, colorKnown := types.CanonicalColor(colorSelector)
	if !colorKnown {
		return runConfiguration{}, fmt.Errorf(invalidColorFormat, colorSelector)
	}
	canonicalFormat, formatKnown := types.CanonicalFormat(formatSelector)
	if !formatKnown {
		return runConfiguration{}, fmt.Errorf(invalidFormatFormat, formatSelector)
	}

	walkRoot := defaultWalkRootPath
	if len(arguments) > 0 {
		if canonicalMode != types.ModeNone {
			return runConfiguration{}, fmt.Errorf(errorPathArgumentMessage)
		}
		walkRoot = arguments[0]
	}

	var resolver output.StyleResolver
	if canonicalColor == types.ColorAlways {
		styleTable, tableError := styles.NewTable(os.Getenv(baseStyleListEnvName), os.Getenv(overrideStyleListEnvName))
		if tableError != nil {
			return runConfiguration{}, fmt.Errorf(errorStyleTableFormat, tableError)
		}
		resolver = styleTable
	}

	return runConfiguration{
		mode:           canonicalMode,
		format:         canonicalFormat,
		copyEnabled:    copyEnabled,
		walkRoot:       walkRoot,
		walkExclusions: applicationConfiguration.Walk.Exclude,
		resolver:       resolver,
	}, nil
}

// runTreeTool reads or walks input according to the resolved configuration,
// builds the tree, renders it, and writes the result.
func runTreeTool(input io.Reader, outputWriter io.Writer, copier clipboard.Copier, configuration runConfiguration) error {
	rootNode, buildError := buildRootNode(input, configuration)
	if buildError != nil {
		return buildError
	}
	summary := builder.Summarize(rootNode)

	var rendered string
	switch configuration.format {
	case types.FormatJSON:
		renderedJSON, renderError := output.RenderTreeJSON(rootNode, summary)
		if renderError != nil {
			return renderError
		}
		rendered = renderedJSON + "\n"
	case types.FormatXML:
		renderedXML, renderError := output.RenderTreeXML(rootNode, summary)
		if renderError != nil {
			return renderError
		}
		rendered = renderedXML + "\n"
	default:
		rendered = output.RenderTreeRaw(rootNode, summary, configuration.resolver)
	}

	if _, writeError := io.WriteString(outputWriter, rendered); writeError != nil {
		return writeError
	}
	if configuration.copyEnabled && copier != nil {
		if copyError := copier.Copy(rendered); copyError != nil {
			return fmt.Errorf(errorCopyOutputFormat, copyError)
		}
	}
	return nil
}

// buildRootNode produces the tree root either by parsing piped input or by
// walking the filesystem when no input mode is selected.
func buildRootNode(input io.Reader, configuration runConfiguration) (*types.TreeNode, error) {
	if configuration.mode == types.ModeNone {
		walker := &walk.Walker{ExcludedNames: configuration.walkExclusions}
		return walker.BuildTree(configuration.walkRoot)
	}

	lineParser, parserError := parser.NewLineParser(configuration.mode)
	if parserError != nil {
		return nil, parserError
	}
	treeBuilder := builder.NewTreeBuilder()
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maximumInputLineLength)
	for scanner.Scan() {
		record, produced := lineParser.ParseLine(scanner.Text())
		if produced {
			treeBuilder.AddRecord(record)
		}
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf(errorReadInputFormat, scanError)
	}
	return treeBuilder.Root(), nil
}
