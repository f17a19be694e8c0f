// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "math"

// Weights of the grade components in the final score.
const (
	WeightHarian = 0.4
	WeightUTS    = 0.3
	WeightUAS    = 0.3
)

// FinalScore computes the weighted final score, rounded to two decimals.
func FinalScore(harian, uts, uas float64) float64 {
	v := harian*WeightHarian + uts*WeightUTS + uas*WeightUAS
	return math.Round(v*100) / 100
}

// Predicate maps a final score to its letter grade.
func Predicate(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "E"
	}
}

// Compute fills NilaiAkhir and Predikat from the component scores.
func (n *Nilai) Compute() {
	n.NilaiAkhir = FinalScore(n.NilaiHarian, n.NilaiUTS, n.NilaiUAS)
	n.Predikat = Predicate(n.NilaiAkhir)
}

// Passed reports whether the final score reaches the subject's KKM.
func (n Nilai) Passed() bool {
	kkm := float64(DefaultKKM)
	if n.MataPelajaran != nil && n.MataPelajaran.KKM > 0 {
		kkm = n.MataPelajaran.KKM
	}
	return n.NilaiAkhir >= kkm
}

// AverageScore returns the mean final score of grades, 0 for none.
func AverageScore(grades []Nilai) float64 {
	if len(grades) == 0 {
		return 0
	}
	var sum float64
	for _, g := range grades {
		sum += g.NilaiAkhir
	}
	return math.Round(sum/float64(len(grades))*100) / 100
}

// Add counts one attendance record.
func (r *RekapAbsensi) Add(status string) {
	switch status {
	case StatusHadir:
		r.Hadir++
	case StatusIzin:
		r.Izin++
	case StatusSakit:
		r.Sakit++
	case StatusAlfa:
		r.Alfa++
	default:
		return
	}
	r.Total++
}

// Percentage returns the share of "hadir" records in percent, 0 when empty.
func (r RekapAbsensi) Percentage() float64 {
	if r.Total == 0 {
		return 0
	}
	return math.Round(float64(r.Hadir)/float64(r.Total)*10000) / 100
}

// Summarize builds an attendance recap from individual records.
func Summarize(records []Absensi) RekapAbsensi {
	var r RekapAbsensi
	for _, a := range records {
		r.Add(a.Status)
	}
	return r
}
