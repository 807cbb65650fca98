package utils_test

import (
	"reflect"
	"testing"

	"github.com/temirov/treepipe/internal/utils"
)

// TestDeduplicatePatterns verifies order-preserving deduplication.
func TestDeduplicatePatterns(testingInstance *testing.T) {
	actual := utils.DeduplicatePatterns([]string{"a", "b", "a", "c", "b"})
	expected := []string{"a", "b", "c"}
	if !reflect.DeepEqual(actual, expected) {
		testingInstance.Errorf("expected %v, got %v", expected, actual)
	}
}

// TestContainsString verifies membership checks.
func TestContainsString(testingInstance *testing.T) {
	values := []string{"one", "two"}
	if !utils.ContainsString(values, "two") {
		testingInstance.Errorf("expected to find existing value")
	}
	if utils.ContainsString(values, "three") {
		testingInstance.Errorf("did not expect to find missing value")
	}
}

// TestGetApplicationVersion verifies that version lookup always yields a value.
func TestGetApplicationVersion(testingInstance *testing.T) {
	if utils.GetApplicationVersion() == "" {
		testingInstance.Errorf("expected a non-empty version string")
	}
}
