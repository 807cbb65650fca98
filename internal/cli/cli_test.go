package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/treepipe/internal/types"
)

// commandExecutionErrorMessage defines the error message for command failures.
const commandExecutionErrorMessage = "command execution error"

// executeCommand runs the root command with the provided stdin and arguments
// and returns its stdout.
func executeCommand(testingInstance *testing.T, input string, arguments ...string) (string, error) {
	testingInstance.Helper()
	testingInstance.Setenv("HOME", testingInstance.TempDir())
	command := createRootCommand()
	command.SetIn(strings.NewReader(input))
	var outputBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(&outputBuffer)
	command.SetArgs(arguments)
	executionError := command.Execute()
	return outputBuffer.String(), executionError
}

// normalModeExpected defines the expected output for four piped paths.
const normalModeExpected = ".\n" +
	"├── COPYING\n" +
	"├── DISCLAIMER\n" +
	"├── README.md\n" +
	"└── tree.go\n" +
	"\n" +
	"1 directory, 4 files\n"

// TestExecuteNormalMode verifies the end-to-end normal-mode pipeline.
func TestExecuteNormalMode(testingInstance *testing.T) {
	input := "COPYING\nDISCLAIMER\nREADME.md\ntree.go\n"
	actual, executionError := executeCommand(testingInstance, input, "-i=normal", "-c", "none")
	if executionError != nil {
		testingInstance.Fatalf("%s: %v", commandExecutionErrorMessage, executionError)
	}
	if actual != normalModeExpected {
		testingInstance.Errorf("unexpected output: %q", actual)
	}
}

// TestExecuteBareInputModeFlag verifies that a bare -i selects normal mode.
func TestExecuteBareInputModeFlag(testingInstance *testing.T) {
	actual, executionError := executeCommand(testingInstance, "a/b\n", "-i", "-c", "none")
	if executionError != nil {
		testingInstance.Fatalf("%s: %v", commandExecutionErrorMessage, executionError)
	}
	if !strings.Contains(actual, "└── b") {
		testingInstance.Errorf("expected parsed path in output: %q", actual)
	}
}

// grepAliasExpected defines the expected output for accumulated grep matches.
const grepAliasExpected = ".\n" +
	"├── [2] COPYING\n" +
	"└── [1] DISCLAIMER\n" +
	"\n" +
	"1 directory, 2 files\n"

// TestExecuteGrepAlias verifies the grep shorthand alias and accumulation.
func TestExecuteGrepAlias(testingInstance *testing.T) {
	input := "COPYING:match one\nDISCLAIMER:match two\nCOPYING:match three\nmalformed line\n"
	actual, executionError := executeCommand(testingInstance, input, "-i=g", "-c", "none")
	if executionError != nil {
		testingInstance.Fatalf("%s: %v", commandExecutionErrorMessage, executionError)
	}
	if actual != grepAliasExpected {
		testingInstance.Errorf("unexpected output: %q", actual)
	}
}

// TestExecuteInvalidSelectors verifies the configuration validation errors.
func TestExecuteInvalidSelectors(testingInstance *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
	}{
		{name: "invalid mode", arguments: []string{"-i=walk"}},
		{name: "invalid color", arguments: []string{"-c", "sometimes"}},
		{name: "invalid format", arguments: []string{"--format", "yaml"}},
	}
	for _, testCase := range testCases {
		if _, executionError := executeCommand(testingInstance, "", testCase.arguments...); executionError == nil {
			testingInstance.Errorf("%s: expected an execution error", testCase.name)
		}
	}
}

// TestExecutePathArgumentOutsideWalkMode verifies the path argument restriction.
func TestExecutePathArgumentOutsideWalkMode(testingInstance *testing.T) {
	if _, executionError := executeCommand(testingInstance, "", "-i=normal", "somewhere"); executionError == nil {
		testingInstance.Errorf("expected an error for a path argument with parsed input")
	}
}

// TestExecuteJSONFormat verifies structured output selection.
func TestExecuteJSONFormat(testingInstance *testing.T) {
	actual, executionError := executeCommand(testingInstance, "a/b\n", "-i=normal", "--format", "json")
	if executionError != nil {
		testingInstance.Fatalf("%s: %v", commandExecutionErrorMessage, executionError)
	}
	var parsed struct {
		Root struct {
			Name     string `json:"name"`
			Children []struct {
				Name string `json:"name"`
			} `json:"children"`
		} `json:"root"`
		Summary types.TreeSummary `json:"summary"`
	}
	if decodeError := json.Unmarshal([]byte(actual), &parsed); decodeError != nil {
		testingInstance.Fatalf("json decode error: %v", decodeError)
	}
	if parsed.Root.Name != "." || len(parsed.Root.Children) != 1 || parsed.Root.Children[0].Name != "a" {
		testingInstance.Errorf("unexpected document: %+v", parsed)
	}
	if parsed.Summary.Directories != 2 || parsed.Summary.Files != 1 {
		testingInstance.Errorf("unexpected summary: %+v", parsed.Summary)
	}
}

// TestExecuteWalkMode verifies the direct filesystem walk without piped input.
func TestExecuteWalkMode(testingInstance *testing.T) {
	walkRoot := testingInstance.TempDir()
	if writeError := os.WriteFile(filepath.Join(walkRoot, "only.txt"), nil, 0o644); writeError != nil {
		testingInstance.Fatalf("write file error: %v", writeError)
	}
	actual, executionError := executeCommand(testingInstance, "", "-c", "none", walkRoot)
	if executionError != nil {
		testingInstance.Fatalf("%s: %v", commandExecutionErrorMessage, executionError)
	}
	expected := ".\n" +
		"└── only.txt\n" +
		"\n" +
		"1 directory, 1 file\n"
	if actual != expected {
		testingInstance.Errorf("unexpected output: %q", actual)
	}
}

// recordingCopier captures clipboard writes for assertions.
type recordingCopier struct {
	copied string
}

func (copier *recordingCopier) Copy(text string) error {
	copier.copied = text
	return nil
}

// TestRunTreeToolCopiesOutput verifies that the rendered output reaches the
// clipboard when copying is enabled.
func TestRunTreeToolCopiesOutput(testingInstance *testing.T) {
	copier := &recordingCopier{}
	var outputBuffer bytes.Buffer
	configuration := runConfiguration{
		mode:        types.ModeNormal,
		format:      types.FormatRaw,
		copyEnabled: true,
	}
	runError := runTreeTool(strings.NewReader("a\n"), &outputBuffer, copier, configuration)
	if runError != nil {
		testingInstance.Fatalf("run error: %v", runError)
	}
	if copier.copied == "" || copier.copied != outputBuffer.String() {
		testingInstance.Errorf("expected clipboard copy to match output, got %q", copier.copied)
	}
}

// TestExecuteColorAlways verifies environment-derived styling end to end.
func TestExecuteColorAlways(testingInstance *testing.T) {
	testingInstance.Setenv("LS_COLORS", "di=01;34")
	testingInstance.Setenv("TREE_COLORS", "")
	actual, executionError := executeCommand(testingInstance, "a/b\n", "-i=normal", "-c", "always")
	if executionError != nil {
		testingInstance.Fatalf("%s: %v", commandExecutionErrorMessage, executionError)
	}
	if !strings.Contains(actual, "\033[01;34ma\033[0m") {
		testingInstance.Errorf("expected styled directory name in output: %q", actual)
	}
}
