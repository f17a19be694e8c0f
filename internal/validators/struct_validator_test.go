// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/sim-sekolah/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_LoginRequest(t *testing.T) {
	v := NewStructValidator()

	tests := []struct {
		name       string
		req        models.LoginRequest
		wantFields []string
	}{
		{name: "valid", req: models.LoginRequest{Email: "budi@sekolah.id", Password: "rahasia"}},
		{name: "empty", req: models.LoginRequest{}, wantFields: []string{"email", "password"}},
		{name: "bad email", req: models.LoginRequest{Email: "budi", Password: "rahasia"}, wantFields: []string{"email"}},
		{name: "short password", req: models.LoginRequest{Email: "budi@sekolah.id", Password: "123"}, wantFields: []string{"password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrInvalidInput)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))

			got := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				got = append(got, f.Field)
				assert.NotEmpty(t, f.Message)
			}
			assert.Equal(t, tt.wantFields, got)
			assert.NotEmpty(t, verr.First())
		})
	}
}

func TestValidate_Nilai(t *testing.T) {
	v := NewStructValidator()

	err := v.Validate(context.Background(), models.Nilai{
		SiswaID: 1, MataPelajaranID: 2, SemesterID: 3,
		NilaiHarian: 101, NilaiUTS: 80, NilaiUAS: 80,
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "nilai_harian", verr.Fields[0].Field)
	assert.Equal(t, "lte", verr.Fields[0].Tag)
}

func TestValidate_BulkAttendanceDives(t *testing.T) {
	v := NewStructValidator()

	err := v.Validate(context.Background(), models.AbsensiBulkRequest{
		JadwalID: 1,
		Tanggal:  "2025-01-06",
		Items:    []models.AbsensiEntry{{SiswaID: 1, Status: "bolos"}},
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "status", verr.Fields[0].Field)
	assert.Equal(t, "oneof", verr.Fields[0].Tag)
}

func TestValidate_Clock(t *testing.T) {
	v := NewStructValidator()
	jadwal := models.Jadwal{
		KelasID: 1, GuruID: 1, MataPelajaranID: 1, SemesterID: 1,
		HariKe: 1, JamMulai: "07:00", JamSelesai: "25:99",
	}

	err := v.Validate(context.Background(), jadwal)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "jam_selesai", verr.Fields[0].Field)
	assert.Equal(t, "jam_selesai harus berformat JJ:MM", verr.Fields[0].Message)
}

func TestValidate_UnsupportedType(t *testing.T) {
	v := NewStructValidator()
	assert.ErrorIs(t, v.Validate(context.Background(), "just a string"), ErrUnsupportedType)
}
