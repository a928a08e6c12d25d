package corpusio

import (
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"s2-corpus/corpus"
)

const (
	EncodeCSVName   = "s2_encode_corpus.csv"
	DecodeCSVName   = "s2_decode_corpus.csv"
	NeighborCSVName = "s2_neighbor_corpus.csv"

	EncodeHeader   = "lat,lon,level,cell_id,token"
	DecodeHeader   = "cell_id,token,lat,lon,level"
	NeighborHeader = "cell_id,edge_neighbors,all_neighbors"
)

type corpusFile struct {
	f  *os.File
	gz *gzip.Writer
	w  io.Writer
}

func createCorpusFile(dir, name string, compress bool) (*corpusFile, error) {
	if compress {
		name += ".gz"
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	cf := &corpusFile{f: f, w: f}
	if compress {
		cf.gz = gzip.NewWriter(f)
		cf.w = cf.gz
	}
	return cf, nil
}

func (c *corpusFile) WriteString(s string) error {
	_, err := io.WriteString(c.w, s)
	return err
}

func (c *corpusFile) Close() error {
	var err error
	if c.gz != nil {
		err = c.gz.Close()
	}
	return errors.Join(err, c.f.Sync(), c.f.Close())
}

// StreamToCSV drains records into the corpus CSV files under dir, header
// row first. The neighbor file is only produced when withNeighbors is set.
// With compress, each file is gzipped and named with a .gz suffix.
func StreamToCSV(records chan corpus.Record, dir string, withNeighbors bool, compress bool) error {
	encodeFile, err := createCorpusFile(dir, EncodeCSVName, compress)
	if err != nil {
		return err
	}
	defer closeLogged(encodeFile)

	decodeFile, err := createCorpusFile(dir, DecodeCSVName, compress)
	if err != nil {
		return err
	}
	defer closeLogged(decodeFile)

	var neighborFile *corpusFile
	if withNeighbors {
		neighborFile, err = createCorpusFile(dir, NeighborCSVName, compress)
		if err != nil {
			return err
		}
		defer closeLogged(neighborFile)
	}

	if err := encodeFile.WriteString(EncodeHeader + "\n"); err != nil {
		return err
	}
	if err := decodeFile.WriteString(DecodeHeader + "\n"); err != nil {
		return err
	}
	if withNeighbors {
		if err := neighborFile.WriteString(NeighborHeader + "\n"); err != nil {
			return err
		}
	}

	var i int
	for record := range records {
		if i%10000 == 0 {
			logrus.Infof("Writing row %d", i)
		}
		if err := encodeFile.WriteString(record.Encode.String() + "\n"); err != nil {
			return err
		}
		if err := decodeFile.WriteString(record.Decode.String() + "\n"); err != nil {
			return err
		}
		if withNeighbors && record.Neighbors != nil {
			if err := neighborFile.WriteString(record.Neighbors.String() + "\n"); err != nil {
				return err
			}
		}
		i++
	}
	return nil
}

func closeLogged(c *corpusFile) {
	if err := c.Close(); err != nil {
		logrus.Error(err)
	}
}
