//go:build !windows

package main

import (
	"errors"

	"github.com/scrimshady/scrimshady/internal/config"
)

func run(cfg *config.Config) error {
	return errors.New("scrimshady requires Windows (DXGI desktop duplication)")
}
