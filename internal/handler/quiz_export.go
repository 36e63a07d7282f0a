package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/handler/helper"
)

var exportHeaders = []string{"Rank", "Player", "Score", "Total questions", "Percentage", "Completed at (UTC)"}

// ExportQuizResults выгружает рейтинг викторины в CSV или Excel
// GET /quiz/results/:quizId/export?format=csv|xlsx
func (h *QuizHandler) ExportQuizResults(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	results, err := h.resultService.GetResultsForExport(c.Request.Context(), quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz_%d_results_%s", quizID, time.Now().UTC().Format("2006-01-02"))
	if format == "xlsx" {
		h.exportXLSX(c, results, filename)
		return
	}
	h.exportCSV(c, results, filename)
}

// exportRow формирует строку выгрузки. Место считается по порядку рейтинга.
func exportRow(rank int, r *entity.QuizResult) []string {
	return []string{
		strconv.Itoa(rank),
		helper.SanitizeForSpreadsheet(r.PlayerName),
		strconv.Itoa(r.Score),
		strconv.Itoa(r.TotalQuestions),
		strconv.FormatFloat(helper.RoundPercentage(r.Percentage()), 'f', 2, 64),
		r.CompletedAt.UTC().Format(time.RFC3339),
	}
}

// exportCSV выгружает результаты в CSV
func (h *QuizHandler) exportCSV(c *gin.Context, results []entity.QuizResult, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	// BOM для корректного отображения UTF-8 в Excel
	if _, err := c.Writer.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		log.Printf("[QuizHandler] Failed to write CSV BOM: %v", err)
		return
	}

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write(exportHeaders); err != nil {
		log.Printf("[QuizHandler] Failed to write CSV header: %v", err)
		return
	}
	for i := range results {
		if err := writer.Write(exportRow(i+1, &results[i])); err != nil {
			log.Printf("[QuizHandler] Failed to write CSV row %d: %v", i+1, err)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("[QuizHandler] Failed to flush CSV: %v", err)
	}
}

// exportXLSX выгружает результаты в Excel через StreamWriter
func (h *QuizHandler) exportXLSX(c *gin.Context, results []entity.QuizResult, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Results"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		log.Printf("[QuizHandler] Failed to rename sheet: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[QuizHandler] Failed to create StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, title := range exportHeaders {
		headers[i] = title
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[QuizHandler] Failed to write Excel header: %v", err)
	}

	for i := range results {
		r := &results[i]
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			i + 1,
			helper.SanitizeForSpreadsheet(r.PlayerName),
			r.Score,
			r.TotalQuestions,
			helper.RoundPercentage(r.Percentage()),
			r.CompletedAt.UTC().Format(time.RFC3339),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[QuizHandler] Failed to write Excel row %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[QuizHandler] Failed to flush Excel stream: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[QuizHandler] Failed to write Excel response: %v", err)
	}
}
