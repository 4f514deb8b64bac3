package convert

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// rejectsHeader is the CSV header of the reject audit file.
const rejectsHeader = "row,reason,detail,organization,amount,date,note"

// WriteRejects serializes skipped rows as CSV so they can be fixed up and
// re-imported.
func WriteRejects(w io.Writer, rejections []Rejection) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(rejectsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rej := range rejections {
		row := []string{
			strconv.Itoa(rej.Row),
			string(rej.Reason),
			rej.Detail,
			rej.Organization,
			rej.Amount,
			rej.Date,
			rej.Note,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

func writeRejectsFile(path string, rejections []Rejection) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating rejects file: %w", err)
	}
	if err := WriteRejects(f, rejections); err != nil {
		f.Close()
		return fmt.Errorf("writing rejects file: %w", err)
	}
	return f.Close()
}
