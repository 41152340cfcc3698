package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestGetPanicsBeforeLoad(t *testing.T) {
	original := globalCfg
	globalCfg = nil
	defer func() {
		globalCfg = original
		if r := recover(); r == nil {
			t.Error("Expected Get to panic before Load")
		}
	}()

	Get()
}

func TestSetForTesting(t *testing.T) {
	original := globalCfg
	defer func() { globalCfg = original }()

	SetForTesting(&Cfg{
		Port:              "8080",
		WorkerCount:       5,
		SchedulerInterval: 60,
		FeedFetchTimeout:  30,
		UserAgent:         "SecBoard/1.0",
	})

	c := Get()
	if c.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", c.Port)
	}
	if c.WorkerCount != 5 {
		t.Errorf("Expected worker count 5, got %d", c.WorkerCount)
	}
	if c.FeedFetchTimeout != 30 {
		t.Errorf("Expected fetch timeout 30, got %d", c.FeedFetchTimeout)
	}
}

func TestApplyTimezone(t *testing.T) {
	if err := applyTimezone("UTC"); err != nil {
		t.Errorf("Expected no error for UTC, got: %v", err)
	}
	if err := applyTimezone("Not/AZone"); err == nil {
		t.Error("Expected error for unknown timezone")
	}
}
