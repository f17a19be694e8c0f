// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/sim-sekolah/internal/logger"
	"github.com/MKhiriev/sim-sekolah/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppInfoService_ReturnsAppInfoServiceInterface(t *testing.T) {
	svc := NewAppInfoService(models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	require.NotNil(t, svc)

	var _ AppInfoService = svc
}

func TestBuildInfo_ReturnsLinkedValues(t *testing.T) {
	svc := NewAppInfoService(models.NewAppBuildInfo("3.1.4", "2026-01-02", "abc123"), logger.Nop())

	info := svc.BuildInfo(context.Background())

	assert.Equal(t, "3.1.4", info.Version())
	assert.Equal(t, "2026-01-02", info.Date())
	assert.Equal(t, "abc123", info.Commit())
}

func TestBuildInfo_MissingValuesAreNA(t *testing.T) {
	svc := NewAppInfoService(models.NewAppBuildInfo("", "", ""), logger.Nop())

	assert.Equal(t, []string{
		"Build version: N/A",
		"Build date: N/A",
		"Build commit: N/A",
	}, svc.BuildInfo(context.Background()).Lines())
}

func TestBuildInfo_ZeroValue(t *testing.T) {
	svc := NewAppInfoService(models.AppBuildInfo{}, logger.Nop())

	assert.Equal(t, "N/A", svc.BuildInfo(context.Background()).Version())
}
