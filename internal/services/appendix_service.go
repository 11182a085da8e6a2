package services

import (
	"fmt"
	"time"

	"github.com/alimgiray/evidence/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	repositoriesSheet = "Repositories"
	commitsSheet      = "Commits"
)

// AppendixService exports a traversal as a spreadsheet that can accompany
// the evidence document.
type AppendixService struct{}

func NewAppendixService() *AppendixService {
	return &AppendixService{}
}

// Write saves the traversal to an .xlsx file at path.
func (s *AppendixService) Write(traversal models.Traversal, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", repositoriesSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(commitsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := s.writeRepositories(f, traversal); err != nil {
		return err
	}
	if err := s.writeCommits(f, traversal); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save appendix %s: %w", path, err)
	}
	return nil
}

func (s *AppendixService) writeRepositories(f *excelize.File, traversal models.Traversal) error {
	rows := [][]interface{}{{"Repository", "Owner", "Commits"}}
	for _, matched := range traversal.Repositories {
		rows = append(rows, []interface{}{
			matched.Repository.FullName,
			matched.Repository.OwnerLogin,
			len(matched.Commits),
		})
	}
	return writeRows(f, repositoriesSheet, rows)
}

func (s *AppendixService) writeCommits(f *excelize.File, traversal models.Traversal) error {
	rows := [][]interface{}{{"Repository", "SHA", "Author", "Email", "Date", "Subject"}}
	for _, matched := range traversal.Repositories {
		for _, commit := range matched.Commits {
			rows = append(rows, []interface{}{
				matched.Repository.FullName,
				commit.SHA,
				commit.AuthorName,
				commit.AuthorEmail,
				commit.AuthorDate.UTC().Format(time.RFC3339),
				commit.Subject(),
			})
		}
	}
	return writeRows(f, commitsSheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
