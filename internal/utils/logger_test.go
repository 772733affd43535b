package utils

import (
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetLogLevel(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetLogLevel("debug")
		}()
	}
	wg.Wait()

	if GetLogger().GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug, got %s", GetLogger().GetLevel())
	}

	SetLogLevel("nonsense")
	if GetLogger().GetLevel() != logrus.InfoLevel {
		t.Errorf("expected fallback to info, got %s", GetLogger().GetLevel())
	}
}
