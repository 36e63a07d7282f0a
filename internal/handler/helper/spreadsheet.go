package helper

import "math"

// SanitizeForSpreadsheet экранирует данные для защиты от formula injection в Excel/CSV
func SanitizeForSpreadsheet(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

// RoundPercentage округляет процент до двух знаков для выгрузки
func RoundPercentage(p float64) float64 {
	return math.Round(p*100) / 100
}
