package cellindex

import (
	"encoding/gob"
	"fmt"
	"os"
)

// IndexData represents the serializable form of the cell index
type IndexData struct {
	Hashes []string `json:"hashes"`
	Count  int64    `json:"count"`
}

// SaveToFile saves the stored hashes to a binary file
func (idx *Index) SaveToFile(filename string) error {
	data := IndexData{
		Hashes: idx.Hashes(),
	}
	data.Count = int64(len(data.Hashes))

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode data: %w", err)
	}

	return nil
}

// LoadFromFile replaces the index contents with the hashes stored in a binary file.
// The index is left untouched when the file cannot be read or holds an invalid hash.
func (idx *Index) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var data IndexData
	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	if int64(len(data.Hashes)) != data.Count {
		return fmt.Errorf("index file %s holds %d hashes, header says %d", filename, len(data.Hashes), data.Count)
	}

	loaded := NewWithPartitions(idx.numPartitions)
	if err := loaded.Add(data.Hashes); err != nil {
		return fmt.Errorf("failed to index hashes: %w", err)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.partitions = loaded.partitions
	idx.extents = loaded.extents
	idx.hashes = loaded.hashes
	idx.itemCount.Store(loaded.itemCount.Load())

	return nil
}
