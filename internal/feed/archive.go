package feed

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"

	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/errors"
)

// ExtractSheet returns the first .xls entry of a zip archive and its name.
func ExtractSheet(archive []byte) ([]byte, string, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, "", errors.NewParseError("zip", "", "invalid archive", err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".xls") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, "", errors.WrapIO("extract", f.Name, err)
		}
		data, err := io.ReadAll(io.LimitReader(rc, constants.MaxFeedArchiveSize+1))
		_ = rc.Close()
		if err != nil {
			return nil, "", errors.WrapIO("extract", f.Name, err)
		}
		if len(data) > constants.MaxFeedArchiveSize {
			return nil, "", &errors.IOError{Operation: "extract", Path: f.Name, Message: "entry exceeds size limit"}
		}
		return data, f.Name, nil
	}
	return nil, "", errors.NewParseError("zip", "", "archive has no .xls sheet", nil)
}

// ReadSheet returns the rows of the workbook's first sheet. A sheet with more
// than maxRows rows is an error. Rows keep their sheet position, so blank rows
// come back as empty slices.
func ReadSheet(data []byte, name string, maxRows int) (rows [][]string, err error) {
	// The BIFF reader panics on some malformed input.
	defer func() {
		if r := recover(); r != nil {
			rows = nil
			err = errors.NewParseError("xls", name, fmt.Sprintf("unreadable workbook: %v", r), nil)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, errors.NewParseError("xls", name, "unreadable workbook", err)
	}
	if wb.NumSheets() == 0 {
		return nil, errors.NewParseError("xls", name, "workbook has no sheets", nil)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.NewParseError("xls", name, "workbook has no sheets", nil)
	}

	last, err := lastRow(int(sheet.MaxRow), name, maxRows)
	if err != nil {
		return nil, err
	}
	rows = make([][]string, 0, last+1)
	for i := 0; i <= last; i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol()+1)
		for j := row.FirstCol(); j <= row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// lastRow returns the index of the last row to read, or a ParseError when the
// sheet has more than maxRows rows.
func lastRow(maxRow int, name string, maxRows int) (int, error) {
	if maxRow >= maxRows {
		return 0, errors.NewParseError("xls", name,
			fmt.Sprintf("sheet has %d rows, more than the %d allowed", maxRow+1, maxRows), nil)
	}
	return maxRow, nil
}
