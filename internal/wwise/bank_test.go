package wwise

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
)

func section(tag string, body []byte) []byte {
	out := []byte(tag)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))
	return append(out, body...)
}

func mediaIndex(records ...[3]uint32) []byte {
	var out []byte
	for _, rec := range records {
		out = binary.LittleEndian.AppendUint32(out, rec[0])
		out = binary.LittleEndian.AppendUint32(out, rec[1])
		out = binary.LittleEndian.AppendUint32(out, rec[2])
	}
	return out
}

func TestParseBankEmbedded(t *testing.T) {
	var bank []byte
	bank = append(bank, section("BKHD", make([]byte, 8))...)
	bank = append(bank, section("DIDX", mediaIndex(
		[3]uint32{100, 0, 4},
		[3]uint32{200, 4, 3},
	))...)
	bank = append(bank, section("DATA", []byte("AAAABBB"))...)

	entries, err := ParseBank(bank)
	if err != nil {
		t.Fatalf("ParseBank: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ID != 100 || entries[0].Streamed || !bytes.Equal(entries[0].Data, []byte("AAAA")) {
		t.Fatalf("entry 0 = %+v", entries[0])
	}
	if entries[1].ID != 200 || entries[1].Streamed || !bytes.Equal(entries[1].Data, []byte("BBB")) {
		t.Fatalf("entry 1 = %+v", entries[1])
	}
}

func TestParseBankStreamedWithoutData(t *testing.T) {
	var bank []byte
	bank = append(bank, section("BKHD", make([]byte, 8))...)
	bank = append(bank, section("DIDX", mediaIndex([3]uint32{77, 0, 1024}))...)

	entries, err := ParseBank(bank)
	if err != nil {
		t.Fatalf("ParseBank: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].ID != 77 || !entries[0].Streamed || entries[0].Data != nil {
		t.Fatalf("entry = %+v", entries[0])
	}
}

func TestParseBankSkipsUnrelatedSections(t *testing.T) {
	var bank []byte
	bank = append(bank, section("BKHD", make([]byte, 8))...)
	bank = append(bank, section("HIRC", []byte{9, 9, 9})...)
	bank = append(bank, section("DIDX", mediaIndex([3]uint32{5, 0, 2}))...)
	bank = append(bank, section("DATA", []byte("ok"))...)
	bank = append(bank, section("STID", []byte("x"))...)

	entries, err := ParseBank(bank)
	if err != nil {
		t.Fatalf("ParseBank: %v", err)
	}
	if len(entries) != 1 || !bytes.Equal(entries[0].Data, []byte("ok")) {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestParseBankZeroLengthMediaStaysEmbedded(t *testing.T) {
	var bank []byte
	bank = append(bank, section("BKHD", make([]byte, 8))...)
	bank = append(bank, section("DIDX", mediaIndex([3]uint32{5, 0, 0}))...)
	bank = append(bank, section("DATA", []byte("zz"))...)

	entries, err := ParseBank(bank)
	if err != nil {
		t.Fatalf("ParseBank: %v", err)
	}
	if entries[0].Streamed || len(entries[0].Data) != 0 {
		t.Fatalf("entry = %+v", entries[0])
	}
}

func TestParseBankRejectsNonBank(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("BKH"), []byte("RIFFxxxxxxxx")} {
		if _, err := ParseBank(data); err == nil {
			t.Fatalf("ParseBank(%q) succeeded, want error", data)
		}
	}
}

func TestParseBankRejectsOversizedSection(t *testing.T) {
	bank := section("BKHD", make([]byte, 8))
	bank = append(bank, "DIDX"...)
	bank = binary.LittleEndian.AppendUint32(bank, 1000)

	_, err := ParseBank(bank)
	if err == nil || !strings.Contains(err.Error(), "runs past end") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseBankRejectsRaggedIndex(t *testing.T) {
	var bank []byte
	bank = append(bank, section("BKHD", make([]byte, 8))...)
	bank = append(bank, section("DIDX", make([]byte, 10))...)

	_, err := ParseBank(bank)
	if err == nil || !strings.Contains(err.Error(), "whole records") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseBankRejectsExtentOutsideData(t *testing.T) {
	var bank []byte
	bank = append(bank, section("BKHD", make([]byte, 8))...)
	bank = append(bank, section("DIDX", mediaIndex([3]uint32{5, 1, 4}))...)
	bank = append(bank, section("DATA", []byte("abc"))...)

	_, err := ParseBank(bank)
	if err == nil || !strings.Contains(err.Error(), "outside") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseBankTruncatedTrailingHeader(t *testing.T) {
	bank := section("BKHD", make([]byte, 8))
	bank = append(bank, "DA"...)

	_, err := ParseBank(bank)
	if err == nil || !strings.Contains(err.Error(), "truncated section header") {
		t.Fatalf("err = %v", err)
	}
}
