package repository_test

import (
	"reflect"
	"testing"

	"github.com/mrivero/dividend-hunter-backend/internal/repository"
)

// TestPaymentMonths tests the comma-joined payment month serialization.
//
// WHY: Payment months cross the database boundary as a plain string. Every
// asset read goes through this parsing, so silently mangled schedules would
// corrupt every calendar built from stored data.
func TestPaymentMonths(t *testing.T) {
	t.Run("formats sorted and parses back", func(t *testing.T) {
		str := repository.FormatPaymentMonths([]int{12, 3, 9, 6})
		if str != "3,6,9,12" {
			t.Errorf("Expected '3,6,9,12', got '%s'", str)
		}

		months := repository.ParsePaymentMonths(str)
		if !reflect.DeepEqual(months, []int{3, 6, 9, 12}) {
			t.Errorf("Expected [3 6 9 12], got %v", months)
		}
	})

	t.Run("empty list round-trips to nil", func(t *testing.T) {
		if str := repository.FormatPaymentMonths(nil); str != "" {
			t.Errorf("Expected empty string, got '%s'", str)
		}
		if months := repository.ParsePaymentMonths(""); months != nil {
			t.Errorf("Expected nil, got %v", months)
		}
	})

	t.Run("drops out-of-range and malformed tokens", func(t *testing.T) {
		months := repository.ParsePaymentMonths("0,3,13,x, 6 ,6")
		if !reflect.DeepEqual(months, []int{3, 6}) {
			t.Errorf("Expected [3 6], got %v", months)
		}
	})

	t.Run("all-invalid input parses to nil", func(t *testing.T) {
		if months := repository.ParsePaymentMonths("0,13,abc"); months != nil {
			t.Errorf("Expected nil, got %v", months)
		}
	})
}

// TestPlatforms tests the platform list serialization.
//
// WHY: Platforms are user-entered and may carry whitespace or empty
// entries; the stored form must stay clean so filters match.
func TestPlatforms(t *testing.T) {
	t.Run("round-trips and trims", func(t *testing.T) {
		str := repository.FormatPlatforms([]string{" DEGIRO", "", "Trading212 "})
		if str != "DEGIRO,Trading212" {
			t.Errorf("Expected 'DEGIRO,Trading212', got '%s'", str)
		}

		platforms := repository.ParsePlatforms(str)
		if !reflect.DeepEqual(platforms, []string{"DEGIRO", "Trading212"}) {
			t.Errorf("Expected [DEGIRO Trading212], got %v", platforms)
		}
	})

	t.Run("empty string parses to nil", func(t *testing.T) {
		if platforms := repository.ParsePlatforms(""); platforms != nil {
			t.Errorf("Expected nil, got %v", platforms)
		}
	})
}
