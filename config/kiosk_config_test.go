package config

import (
	"sync"
	"testing"

	"go.uber.org/zap"
)

func newTestKioskConfig() *KioskConfig {
	return &KioskConfig{
		settings: kioskSettings{IsKioskEnabled: true},
		logger:   zap.NewNop().Sugar(),
	}
}

func TestKioskConfigDefaultsEnabled(t *testing.T) {
	cfg := newTestKioskConfig()

	if !cfg.IsKioskEnabled() {
		t.Fatal("kiosk must default to enabled before the first redis poll")
	}
	if cfg.ClosedNotice() != "" {
		t.Fatalf("unexpected default notice %q", cfg.ClosedNotice())
	}
}

func TestKioskConfigStoreSwapsWholeSettings(t *testing.T) {
	cfg := newTestKioskConfig()

	cfg.storeSettings(kioskSettings{IsKioskEnabled: false, ClosedNotice: "本日は閉園しました"})

	if cfg.IsKioskEnabled() {
		t.Fatal("expected kiosk disabled after store")
	}
	if cfg.ClosedNotice() != "本日は閉園しました" {
		t.Fatalf("unexpected notice %q", cfg.ClosedNotice())
	}
}

// Readers and the poller touch the settings from different goroutines;
// run them together so the race detector covers the accessors.
func TestKioskConfigConcurrentAccess(t *testing.T) {
	cfg := newTestKioskConfig()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cfg.storeSettings(kioskSettings{IsKioskEnabled: j%2 == 0, ClosedNotice: "メンテナンス中"})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cfg.IsKioskEnabled()
				cfg.ClosedNotice()
			}
		}()
	}
	wg.Wait()

	if notice := cfg.ClosedNotice(); notice != "メンテナンス中" {
		t.Fatalf("unexpected notice after writes %q", notice)
	}
}
