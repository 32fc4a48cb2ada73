// Package sysinfo samples CPU and memory load for the tray tooltip.
package sysinfo

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

type Snapshot struct {
	CPUPercent  float64 `yaml:"cpu_percent"`
	RAMPercent  float64 `yaml:"ram_percent"`
	RAMUsedMB   uint64  `yaml:"ram_used_mb"`
	DiskPercent float64 `yaml:"disk_percent"`
	UptimeHours float64 `yaml:"uptime_hours"`
}

// Sampler reads the figures shown in the tooltip. Unset fields use gopsutil.
type Sampler struct {
	CPU    func(ctx context.Context) (float64, error)
	Memory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	Disk   func(ctx context.Context) (float64, error)
	Uptime func(ctx context.Context) (uint64, error)
}

func NewSampler() *Sampler {
	return &Sampler{}
}

// Sample collects a snapshot. Individual probe failures leave their fields
// zero; an error is returned only when every probe failed.
func (s *Sampler) Sample(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var failed []string

	if pct, err := s.cpu(ctx); err == nil {
		snap.CPUPercent = pct
	} else {
		failed = append(failed, "cpu: "+err.Error())
	}

	if vmem, err := s.memory(ctx); err == nil {
		snap.RAMPercent = vmem.UsedPercent
		snap.RAMUsedMB = vmem.Used / 1024 / 1024
	} else {
		failed = append(failed, "mem: "+err.Error())
	}

	if pct, err := s.disk(ctx); err == nil {
		snap.DiskPercent = pct
	} else {
		failed = append(failed, "disk: "+err.Error())
	}

	if secs, err := s.uptime(ctx); err == nil {
		snap.UptimeHours = float64(secs) / 3600
	} else {
		failed = append(failed, "uptime: "+err.Error())
	}

	if len(failed) == 4 {
		return snap, fmt.Errorf("system info unavailable: %s", strings.Join(failed, "; "))
	}
	return snap, nil
}

func (s *Sampler) cpu(ctx context.Context) (float64, error) {
	if s.CPU != nil {
		return s.CPU(ctx)
	}
	// Interval 0 compares against the previous call, so the first reading
	// after start may be 0.
	pcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(pcts) == 0 {
		return 0, fmt.Errorf("no cpu counters")
	}
	return pcts[0], nil
}

func (s *Sampler) memory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	if s.Memory != nil {
		return s.Memory(ctx)
	}
	return mem.VirtualMemoryWithContext(ctx)
}

func (s *Sampler) disk(ctx context.Context) (float64, error) {
	if s.Disk != nil {
		return s.Disk(ctx)
	}
	usage, err := disk.UsageWithContext(ctx, rootPath())
	if err != nil {
		return 0, err
	}
	return usage.UsedPercent, nil
}

func (s *Sampler) uptime(ctx context.Context) (uint64, error) {
	if s.Uptime != nil {
		return s.Uptime(ctx)
	}
	return host.UptimeWithContext(ctx)
}

// Tooltip formats the tray hover text, e.g. "Cat\nCPU 12.5%  Memory 48.0%".
func Tooltip(title string, snap Snapshot) string {
	return fmt.Sprintf("%s\nCPU %.1f%%  Memory %.1f%%", title, snap.CPUPercent, snap.RAMPercent)
}
