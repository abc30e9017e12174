package dyn

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"

	watcon "github.com/abrownless1/WatCon"
	"github.com/abrownless1/WatCon/residues"
)

const classificationHeader = "Frame Index,Resid,MSA_Resid,Index_1,Index_2,Protein_Atom,Classification,Angle_1,Angle_2"

// ClassificationLog writes the per-water classification records of a run to
// a single CSV file, one row per classified water per frame. Workers share
// one log; Append is safe for concurrent use. Filenames ending in .zst get
// zstd compression.
type ClassificationLog struct {
	mu   sync.Mutex
	f    *os.File
	zw   *zstd.Encoder
	w    io.Writer
	rows int
}

// NewClassificationLog creates the file and writes the header.
func NewClassificationLog(filename string) (*ClassificationLog, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, watcon.NewError(watcon.KindConfiguration, "dyn: can't create classification log %s: %v", filename, err)
	}
	L := &ClassificationLog{f: f, w: f}
	if strings.HasSuffix(filename, ".zst") {
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, watcon.NewError(watcon.KindOther, "dyn: can't start zstd writer for %s: %v", filename, err)
		}
		L.zw = zw
		L.w = zw
	}
	if _, err := fmt.Fprintln(L.w, classificationHeader); err != nil {
		L.Close()
		return nil, watcon.NewError(watcon.KindOther, "dyn: can't write classification header: %v", err)
	}
	return L, nil
}

// Append writes one frame's classifications. A NaN angle becomes an empty
// field.
func (L *ClassificationLog) Append(frame int, cs []residues.Classification) error {
	L.mu.Lock()
	defer L.mu.Unlock()
	for _, c := range cs {
		_, err := fmt.Fprintf(L.w, "%d,%d,%d,%d,%d,%s,%s,%s,%s\n",
			frame, c.Resid, c.MSAResid, c.Index1, c.Index2,
			c.ProteinAtom, c.Kind, angleField(c.Angle1), angleField(c.Angle2))
		if err != nil {
			return watcon.NewError(watcon.KindOther, "dyn: classification write failed: %v", err)
		}
		L.rows++
	}
	return nil
}

// Rows returns the number of data rows written so far.
func (L *ClassificationLog) Rows() int {
	L.mu.Lock()
	defer L.mu.Unlock()
	return L.rows
}

// Close flushes compression, if any, and closes the file.
func (L *ClassificationLog) Close() error {
	L.mu.Lock()
	defer L.mu.Unlock()
	if L.zw != nil {
		if err := L.zw.Close(); err != nil {
			L.f.Close()
			return watcon.NewError(watcon.KindOther, "dyn: can't finish zstd stream: %v", err)
		}
	}
	return L.f.Close()
}

func angleField(a float64) string {
	if math.IsNaN(a) {
		return ""
	}
	return fmt.Sprintf("%.2f", a)
}
