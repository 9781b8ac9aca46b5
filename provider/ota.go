// Package provider manages built-in and custom media backends.
package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kyoku-cli/kyoku/log"
	"github.com/kyoku-cli/kyoku/network"
	"github.com/kyoku-cli/kyoku/where"
	tea "github.com/charmbracelet/bubbletea"
)

// RepoRawURL points at the upstream copies of the shared Lua helpers.
const RepoRawURL = "https://raw.githubusercontent.com/kyoku-cli/kyoku/main/config/sources/"

// ScriptsUpdatedMsg is dispatched to the Bubbletea event loop when script
// updates complete successfully.
type ScriptsUpdatedMsg struct{}

// UpdateScripts fetches updated copies of the bundled Lua helpers in the
// background. Hash comparison avoids redundant disk writes.
func UpdateScripts() tea.Cmd {
	return func() tea.Msg {
		filesToUpdate := []string{"common.lua"}
		updated := false

		// Timeout so the goroutine cannot leak on DNS failures.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		for _, file := range filesToUpdate {
			if updateSingleFile(ctx, file) {
				updated = true
			}
		}

		if updated {
			log.Info("backend script updates applied")
			return ScriptsUpdatedMsg{}
		}

		log.Info("backend scripts are up to date")
		return nil
	}
}

func updateSingleFile(ctx context.Context, filename string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, RepoRawURL+filename, nil)
	if err != nil {
		log.Warnf("script update request for %s: %v", filename, err)
		return false
	}

	resp, err := network.Client.Do(req)
	if err != nil {
		log.Warnf("script update fetch for %s: %v", filename, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnf("script update for %s returned %d", filename, resp.StatusCode)
		return false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false
	}

	remoteHashRaw := sha256.Sum256(body)
	remoteHash := hex.EncodeToString(remoteHashRaw[:])

	localPath := filepath.Join(where.Sources(), filename)
	if localBytes, err := os.ReadFile(localPath); err == nil {
		localHashRaw := sha256.Sum256(localBytes)
		if hex.EncodeToString(localHashRaw[:]) == remoteHash {
			return false
		}
	}

	// Write-then-rename keeps a concurrent loader from seeing a torn file.
	tmpPath := localPath + ".tmp"
	if err = os.WriteFile(tmpPath, body, 0644); err != nil {
		log.Warnf("script update write for %s: %v", filename, err)
		return false
	}
	if err = os.Rename(tmpPath, localPath); err != nil {
		_ = os.Remove(tmpPath)
		log.Warnf("script update swap for %s: %v", filename, err)
		return false
	}

	log.Infof("updated backend script %s", filename)
	return true
}
