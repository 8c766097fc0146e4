package sim

import (
	"math/rand"
	"testing"
)

func TestBuildSampleTable_InvalidSize_ReturnsError(t *testing.T) {
	z, _ := NewZipfSampler(ZipfElements, DefaultJobLotShape)
	if _, err := BuildSampleTable(z, 0, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected error for size = 0")
	}
	if _, err := BuildSampleTable(z, -5, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestSampleTable_EntriesWithinDistributionRange(t *testing.T) {
	z, _ := NewZipfSampler(ZipfElements, DefaultTrafficShape)
	table, err := BuildSampleTable(z, 4096, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 4096 {
		t.Fatalf("Len() = %d, want 4096", table.Len())
	}
	for i := uint64(0); i < 4096; i++ {
		v := table.At(i)
		if v < 1 || v > ZipfElements {
			t.Errorf("entry %d: %d outside [1, %d]", i, v, ZipfElements)
			break
		}
	}
}

func TestSampleTable_IndexWrapsModuloLength(t *testing.T) {
	z, _ := NewZipfSampler(ZipfElements, DefaultJobLotShape)
	table, _ := BuildSampleTable(z, 16, rand.New(rand.NewSource(42)))
	for i := uint64(0); i < 16; i++ {
		if table.At(i) != table.At(i+16) {
			t.Fatalf("index %d: At(i) != At(i+len)", i)
		}
		if table.At(i) != table.At(i+16*1000) {
			t.Fatalf("index %d: wraparound broken for large offsets", i)
		}
	}
}

func TestSampleTable_LookupIsStable(t *testing.T) {
	// The table is immutable after build: repeated reads of the same
	// index return the same value.
	z, _ := NewZipfSampler(ZipfElements, DefaultJobLotShape)
	table, _ := BuildSampleTable(z, 64, rand.New(rand.NewSource(9)))
	for i := uint64(0); i < 64; i++ {
		first := table.At(i)
		for rep := 0; rep < 3; rep++ {
			if got := table.At(i); got != first {
				t.Fatalf("index %d: read %d then %d", i, first, got)
			}
		}
	}
}
