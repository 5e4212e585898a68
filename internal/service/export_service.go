package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"text2learn_backend/internal/model"
	"text2learn_backend/internal/repository"
)

// ExportService 把课时内容渲染为 PDF 并交给存储层
type ExportService struct {
	lessonRepo *repository.LessonRepository
	storage    *StorageService
}

func NewExportService(lessonRepo *repository.LessonRepository, storage *StorageService) *ExportService {
	return &ExportService{lessonRepo: lessonRepo, storage: storage}
}

// ExportLessonPDF 渲染课时 PDF，上传后返回可访问的 URL
func (s *ExportService) ExportLessonPDF(ctx context.Context, lessonID uint) (string, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		return "", err
	}

	data, err := renderLessonPDF(lesson)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("lessons/lesson_%d_%s.pdf", lesson.ID, uuid.NewString())
	return s.storage.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), "application/pdf")
}

func renderLessonPDF(lesson *model.Lesson) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(lesson.Title, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(lesson.Title), "", "L", false)
	pdf.Ln(2)

	if len(lesson.Objectives) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 7, "Objectives", "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		for _, obj := range lesson.Objectives {
			pdf.MultiCell(0, 6, tr("- "+obj), "", "L", false)
		}
		pdf.Ln(3)
	}

	for _, block := range lesson.Content {
		switch block.Type {
		case model.BlockHeading:
			pdf.SetFont("Helvetica", "B", 14)
			pdf.MultiCell(0, 8, tr(block.Text), "", "L", false)
			pdf.Ln(1)
		case model.BlockParagraph:
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, tr(block.Text), "", "L", false)
			pdf.Ln(2)
		case model.BlockCode:
			pdf.SetFont("Courier", "", 10)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 5, tr(block.Text), "", "L", true)
			pdf.Ln(2)
		case model.BlockVideo:
			pdf.SetFont("Helvetica", "I", 10)
			label := block.URL
			if label == "" {
				label = "Video: " + block.Query
			}
			pdf.MultiCell(0, 6, tr(label), "", "L", false)
			pdf.Ln(2)
		case model.BlockMCQ:
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, tr("Q: "+block.Question), "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
			for i, opt := range block.Options {
				pdf.MultiCell(0, 6, tr(fmt.Sprintf("%c) %s", 'A'+i, opt)), "", "L", false)
			}
			if block.Explanation != "" {
				pdf.SetFont("Helvetica", "I", 10)
				pdf.MultiCell(0, 5, tr(block.Explanation), "", "L", false)
			}
			pdf.Ln(2)
		}
	}

	if lesson.HinglishText != "" {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 8, "Hinglish", "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(lesson.HinglishText), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
