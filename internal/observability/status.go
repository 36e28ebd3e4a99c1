package observability

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

type SystemStatus struct {
	mu             sync.RWMutex
	ActiveGoal     string
	PlansGenerated int64
	ProviderCalls  int64
	LastHeartbeat  time.Time
}

var globalStatus = &SystemStatus{
	LastHeartbeat: time.Now(),
}

// SetActiveGoal marks a goal as being planned right now; empty means idle.
func SetActiveGoal(goal string) {
	globalStatus.mu.Lock()
	defer globalStatus.mu.Unlock()
	globalStatus.ActiveGoal = goal
}

// PlanGenerated bumps the lifetime plan counter.
func PlanGenerated() {
	globalStatus.mu.Lock()
	defer globalStatus.mu.Unlock()
	globalStatus.PlansGenerated++
}

// ProviderCall bumps the lifetime external-call counter (model,
// search, weather, guide).
func ProviderCall() {
	globalStatus.mu.Lock()
	defer globalStatus.mu.Unlock()
	globalStatus.ProviderCalls++
}

// GetStatus retrieves a copy of the global system status.
func GetStatus() (string, int64, int64, time.Time) {
	globalStatus.mu.RLock()
	defer globalStatus.mu.RUnlock()
	return globalStatus.ActiveGoal, globalStatus.PlansGenerated, globalStatus.ProviderCalls, globalStatus.LastHeartbeat
}

// Heartbeat updates the last heartbeat time.
func Heartbeat() {
	globalStatus.mu.Lock()
	defer globalStatus.mu.Unlock()
	globalStatus.LastHeartbeat = time.Now()
}

// ------------------------------------------------------------
// Live Status
// ------------------------------------------------------------

var radarFrames = []string{"◜", "◝", "◞", "◟"}
var radarIdx = 0

func PrintLiveStatus() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(startTime).Round(time.Second)
	memMB := float64(m.Alloc) / 1024 / 1024

	goal, plans, calls, lastHB := GetStatus()

	// Pulse Logic
	pulseIcon := "🔴"
	pulseText := "OFFLINE"
	pulseColor := colorNeonMag

	delta := time.Since(lastHB)

	if delta < 40*time.Second {
		pulseIcon = "🟢"
		pulseText = "HEALTHY"
		pulseColor = colorNeonCyan
	} else if delta < 90*time.Second {
		pulseIcon = "🟡"
		pulseText = "LAGGING"
		pulseColor = colorPurple
	}

	// Radar Animation
	radar := " "
	if goal != "" {
		radar = radarFrames[radarIdx]
		radarIdx = (radarIdx + 1) % len(radarFrames)
	}

	// Goal Truncation
	displayGoal := goal
	if displayGoal == "" {
		displayGoal = "Waiting..."
	}
	if len(displayGoal) > 25 {
		displayGoal = displayGoal[:22] + "..."
	}

	// Memory Bar (Percent Based)
	totalMB := float64(m.Sys) / 1024 / 1024
	memPercent := memMB / totalMB

	barWidth := 20
	filled := clamp(int(memPercent*float64(barWidth)), 0, barWidth)

	bar := strings.Repeat("█", filled) +
		strings.Repeat("▒", barWidth-filled)

	barColor := colorNeonCyan
	if memPercent > 0.7 {
		barColor = colorNeonMag
	}

	// Build the status string BEFORE locking, to minimise lock hold time.
	statusStr := fmt.Sprintf(
		"\033[s\033[10;1H\033[K%s[%s] %s%s %-10s%s | [🗺️ %d plans] [📡 %d calls] [%s] %s%s%s [%v] [%s%s %.1fMB%s]\033[u",
		colorReset,
		lastHB.Format("15:04:05"),
		pulseColor, pulseIcon, pulseText, colorReset,
		plans, calls,
		displayGoal,
		colorPurple, radar, colorReset,
		uptime,
		barColor, bar, memMB, colorReset,
	)

	// Lock, write the ENTIRE escape sequence atomically, unlock.
	termMu.Lock()
	fmt.Print(statusStr)
	termMu.Unlock()
}
