// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestFinalScore(t *testing.T) {
	assert.Equal(t, 86.0, FinalScore(80, 90, 90))
	assert.Equal(t, 81.5, FinalScore(80, 85, 80))
	assert.Equal(t, 0.0, FinalScore(0, 0, 0))
	assert.Equal(t, 100.0, FinalScore(100, 100, 100))
	assert.Equal(t, 76.0, FinalScore(70, 80, 80))
}

func TestPredicate(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A"},
		{90, "A"},
		{89.99, "B"},
		{80, "B"},
		{70, "C"},
		{60, "D"},
		{59.9, "E"},
		{0, "E"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Predicate(tt.score), "score %v", tt.score)
	}
}

func TestNilai_Compute(t *testing.T) {
	n := Nilai{NilaiHarian: 90, NilaiUTS: 90, NilaiUAS: 90}
	n.Compute()

	assert.Equal(t, 90.0, n.NilaiAkhir)
	assert.Equal(t, "A", n.Predikat)
}

func TestNilai_Passed(t *testing.T) {
	assert.True(t, Nilai{NilaiAkhir: 75}.Passed())
	assert.False(t, Nilai{NilaiAkhir: 74.9}.Passed())
	assert.False(t, Nilai{NilaiAkhir: 79, MataPelajaran: &MataPelajaran{KKM: 80}}.Passed())
}

func TestAverageScore(t *testing.T) {
	assert.Equal(t, 0.0, AverageScore(nil))
	assert.Equal(t, 80.0, AverageScore([]Nilai{{NilaiAkhir: 70}, {NilaiAkhir: 90}}))
}

func TestRekapAbsensi(t *testing.T) {
	r := Summarize([]Absensi{
		{Status: StatusHadir},
		{Status: StatusHadir},
		{Status: StatusHadir},
		{Status: StatusSakit},
		{Status: "unknown"},
	})

	assert.Equal(t, 3, r.Hadir)
	assert.Equal(t, 1, r.Sakit)
	assert.Equal(t, 4, r.Total)
	assert.Equal(t, 75.0, r.Percentage())

	assert.Equal(t, 0.0, RekapAbsensi{}.Percentage())
}

func TestToken_Expired(t *testing.T) {
	now := time.Now()

	past := Token{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))}}
	future := Token{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}}

	assert.True(t, past.Expired(now))
	assert.False(t, future.Expired(now))
	assert.False(t, Token{}.Expired(now))
}
