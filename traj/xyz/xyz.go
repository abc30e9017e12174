/*
 * xyz.go, part of watcon
 *
 *
 * Copyright 2026 The watcon authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public
 * License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 */

//Package xyz reads multi-frame, residue-annotated XYZ trajectories. Each
//frame is an atom count line, a comment line and one line per atom with
//name, residue name, residue id and Cartesian coordinates. A comment line
//starting with "box" carries the three orthorhombic box lengths. Files
//ending in .gz or .zst are decompressed on the fly.
package xyz

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	watcon "github.com/abrownless1/WatCon"
)

// Reader reads frames from a residue-annotated XYZ file. It implements
// watcon.Trajectory.
type Reader struct {
	filename string
	f        *os.File
	zr       *zstd.Decoder
	gr       *gzip.Reader
	buf      *bufio.Reader
	natoms   int
	readable bool
}

// New opens the trajectory and reads the first frame's atom count, leaving
// the reader positioned at the first frame.
func New(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, Error{"can't open file: " + err.Error(), filename, []string{"New"}, true}
	}
	R := &Reader{filename: filename, f: f}
	var src io.Reader = f
	if strings.HasSuffix(filename, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, Error{"can't start zstd decoder: " + err.Error(), filename, []string{"New"}, true}
		}
		R.zr = zr
		src = zr
	} else if strings.HasSuffix(filename, ".gz") {
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, Error{"can't start gzip decoder: " + err.Error(), filename, []string{"New"}, true}
		}
		R.gr = gr
		src = gr
	}
	R.buf = bufio.NewReader(src)
	R.readable = true
	return R, nil
}

// Readable returns true if the trajectory can still be read.
func (R *Reader) Readable() bool {
	return R.readable
}

// Len returns the number of atoms in the last frame read, 0 before the first
// read.
func (R *Reader) Len() int {
	return R.natoms
}

// Next reads one frame. At the normal end of the file it closes the reader
// and returns an error implementing watcon.LastFrameError.
func (R *Reader) Next() (*watcon.Frame, error) {
	if !R.readable {
		return nil, Error{"reader is closed", R.filename, []string{"Next"}, true}
	}
	line, err := R.line()
	if err != nil {
		if err == io.EOF {
			R.Close()
			return nil, newLastFrameError(R.filename)
		}
		return nil, Error{"can't read atom count: " + err.Error(), R.filename, []string{"Next"}, true}
	}
	if strings.TrimSpace(line) == "" {
		//a trailing blank line after the last frame
		if _, err := R.line(); err == io.EOF {
			R.Close()
			return nil, newLastFrameError(R.filename)
		}
		return nil, Error{"blank line where an atom count was expected", R.filename, []string{"Next"}, true}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || natoms <= 0 {
		return nil, Error{fmt.Sprintf("bad atom count line %q", strings.TrimSpace(line)), R.filename, []string{"Next"}, true}
	}
	comment, err := R.line()
	if err != nil {
		return nil, Error{"can't read comment line: " + err.Error(), R.filename, []string{"Next"}, true}
	}
	frame := &watcon.Frame{
		Records: make([]watcon.AtomRecord, 0, natoms),
		Box:     parseBox(comment),
	}
	for i := 0; i < natoms; i++ {
		line, err := R.line()
		if err != nil {
			return nil, Error{fmt.Sprintf("frame truncated at atom %d: %v", i, err), R.filename, []string{"Next"}, true}
		}
		rec, err := parseAtom(line, i)
		if err != nil {
			return nil, Error{err.Error(), R.filename, []string{"Next"}, true}
		}
		frame.Records = append(frame.Records, rec)
	}
	R.natoms = natoms
	return frame, nil
}

// Close releases the decompressor, if any, and the file. Further reads fail.
func (R *Reader) Close() {
	if !R.readable {
		return
	}
	R.readable = false
	if R.zr != nil {
		R.zr.Close()
	}
	if R.gr != nil {
		R.gr.Close()
	}
	R.f.Close()
}

func (R *Reader) line() (string, error) {
	line, err := R.buf.ReadString('\n')
	if err == io.EOF && strings.TrimSpace(line) != "" {
		return line, nil //last line without a final newline
	}
	return line, err
}

// parseBox pulls the box lengths out of a comment line of the form
// "box 40.0 40.0 40.0". Anything else means no box.
func parseBox(comment string) []float64 {
	fields := strings.Fields(comment)
	if len(fields) < 4 || strings.ToLower(strings.TrimSuffix(fields[0], ":")) != "box" {
		return nil
	}
	box := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil
		}
		box[i] = v
	}
	return box
}

func parseAtom(line string, index int) (watcon.AtomRecord, error) {
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return watcon.AtomRecord{}, fmt.Errorf("atom line %d has %d fields, want 6: %q", index, len(fields), strings.TrimSpace(line))
	}
	molid, err := strconv.Atoi(fields[2])
	if err != nil {
		return watcon.AtomRecord{}, fmt.Errorf("bad residue id in atom line %d: %q", index, fields[2])
	}
	rec := watcon.AtomRecord{
		Index:   index,
		Name:    fields[0],
		MolName: fields[1],
		MolID:   molid,
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[3+i], 64)
		if err != nil {
			return watcon.AtomRecord{}, fmt.Errorf("bad coordinate in atom line %d: %q", index, fields[3+i])
		}
		rec.Coords[i] = v
	}
	return rec, nil
}

//Errors

// Error is the general structure for XYZ trajectory errors. It fulfills
// watcon.Error and watcon.TrajError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("xyz file %s error: %s", err.filename, err.message)
}

// Decorate adds the caller's name to the error and returns the trace so far.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file associated to the error.
func (err Error) FileName() string { return err.filename }

// Format returns the format of the file associated to the error.
func (err Error) Format() string { return "xyz" }

// Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

// lastFrameError implements watcon.LastFrameError.
type lastFrameError struct {
	fileName string
	deco     []string
}

// NormalLastFrameTermination does nothing.
func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Format() string { return "xyz" }

func (E lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newLastFrameError(filename string) lastFrameError {
	return lastFrameError{fileName: filename}
}
