package corpusio

import (
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/sirupsen/logrus"

	"s2-corpus/corpus"
)

const (
	EncodeParquetName   = "s2_encode_corpus.parquet"
	DecodeParquetName   = "s2_decode_corpus.parquet"
	NeighborParquetName = "s2_neighbor_corpus.parquet"

	rowBufferSize = 10000
)

type EncodeCellRow struct {
	Lat    float64 `parquet:"lat, type=DOUBLE"`
	Lon    float64 `parquet:"lon, type=DOUBLE"`
	Level  int32   `parquet:"level, type=INT32"`
	CellID int64   `parquet:"cell_id, type=INT64"`
	Token  string  `parquet:"token, type=UTF8"`
	Geom   string  `parquet:"geom, type=UTF8"`
}

type DecodeCellRow struct {
	CellID int64   `parquet:"cell_id, type=INT64"`
	Token  string  `parquet:"token, type=UTF8"`
	Lat    float64 `parquet:"lat, type=DOUBLE"`
	Lon    float64 `parquet:"lon, type=DOUBLE"`
	Level  int32   `parquet:"level, type=INT32"`
}

type NeighborCellRow struct {
	CellID        int64  `parquet:"cell_id, type=INT64"`
	EdgeNeighbors string `parquet:"edge_neighbors, type=UTF8"`
	AllNeighbors  string `parquet:"all_neighbors, type=UTF8"`
}

type parquetStream[T any] struct {
	out    *os.File
	writer *parquet.GenericWriter[T]
	buf    []T
}

func newParquetStream[T any](dir, name string) (*parquetStream[T], error) {
	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	schema := parquet.SchemaOf(new(T))
	writer := parquet.NewGenericWriter[T](out, schema, parquet.Compression(&parquet.Snappy))
	return &parquetStream[T]{out: out, writer: writer, buf: make([]T, 0, rowBufferSize)}, nil
}

func (s *parquetStream[T]) append(row T) error {
	s.buf = append(s.buf, row)
	if len(s.buf) < rowBufferSize {
		return nil
	}
	return s.flush()
}

// Flushing row groups to disk every rowBufferSize rows keeps memory flat
// regardless of corpus size.
func (s *parquetStream[T]) flush() error {
	if len(s.buf) == 0 {
		return nil
	}
	if _, err := s.writer.Write(s.buf); err != nil {
		return err
	}
	if err := s.writer.Flush(); err != nil {
		return err
	}
	s.buf = s.buf[:0]
	return nil
}

func (s *parquetStream[T]) close() {
	if err := s.flush(); err != nil {
		logrus.Error(err)
	}
	if err := s.writer.Close(); err != nil {
		logrus.Error(err)
	}
	if err := s.out.Close(); err != nil {
		logrus.Error(err)
	}
}

// StreamToParquet mirrors StreamToCSV with parquet output. Rows are written
// by a single consumer so that file order matches generation order, which
// the corpus format guarantees. Encode rows additionally carry the cell
// polygon as WKT.
func StreamToParquet(records chan corpus.Record, dir string, withNeighbors bool) error {
	encodeStream, err := newParquetStream[EncodeCellRow](dir, EncodeParquetName)
	if err != nil {
		return err
	}
	defer encodeStream.close()

	decodeStream, err := newParquetStream[DecodeCellRow](dir, DecodeParquetName)
	if err != nil {
		return err
	}
	defer decodeStream.close()

	var neighborStream *parquetStream[NeighborCellRow]
	if withNeighbors {
		neighborStream, err = newParquetStream[NeighborCellRow](dir, NeighborParquetName)
		if err != nil {
			return err
		}
		defer neighborStream.close()
	}

	var i int
	for record := range records {
		if i%rowBufferSize == 0 {
			logrus.Infof("Writing row %d", i)
		}
		encodeRow := EncodeCellRow{
			Lat:    record.Encode.Lat,
			Lon:    record.Encode.Lon,
			Level:  int32(record.Encode.Level),
			CellID: int64(record.Encode.Cell),
			Token:  record.Encode.Token,
			Geom:   corpus.CellWKT(record.Encode.Cell),
		}
		if err := encodeStream.append(encodeRow); err != nil {
			return err
		}

		decodeRow := DecodeCellRow{
			CellID: int64(record.Decode.Cell),
			Token:  record.Decode.Token,
			Lat:    record.Decode.Lat,
			Lon:    record.Decode.Lon,
			Level:  int32(record.Decode.Level),
		}
		if err := decodeStream.append(decodeRow); err != nil {
			return err
		}

		if withNeighbors && record.Neighbors != nil {
			neighborRow := NeighborCellRow{
				CellID:        int64(record.Neighbors.Cell),
				EdgeNeighbors: record.Neighbors.EdgeField(),
				AllNeighbors:  record.Neighbors.AllField(),
			}
			if err := neighborStream.append(neighborRow); err != nil {
				return err
			}
		}
		i++
	}
	return nil
}
