package network

import (
	"testing"

	"github.com/automoto/kaboomer-mp/shared/messages"
)

func TestPredictionBufferStoreGet(t *testing.T) {
	var pb PredictionBuffer

	pb.Store(messages.PlayerInput{Sequence: 5, MoveX: 1}, 10, 20)

	rec, ok := pb.Get(5)
	if !ok {
		t.Fatal("stored record not found")
	}
	if rec.PredictedX != 10 || rec.PredictedZ != 20 {
		t.Errorf("record = %+v, want predicted (10, 20)", rec)
	}
	if pb.NextSeq() != 6 {
		t.Errorf("NextSeq = %d, want 6", pb.NextSeq())
	}

	if _, ok := pb.Get(4); ok {
		t.Error("Get returned a record for a sequence never stored")
	}
}

func TestPredictionBufferOverwrite(t *testing.T) {
	var pb PredictionBuffer

	pb.Store(messages.PlayerInput{Sequence: 1}, 1, 1)
	// Sequence 1+predictionBufferSize lands in the same slot.
	pb.Store(messages.PlayerInput{Sequence: 1 + predictionBufferSize}, 2, 2)

	if _, ok := pb.Get(1); ok {
		t.Error("overwritten slot still served the old sequence")
	}
	if _, ok := pb.Get(1 + predictionBufferSize); !ok {
		t.Error("new sequence not found after overwrite")
	}
}

func TestGetUnacknowledged(t *testing.T) {
	var pb PredictionBuffer
	for seq := uint32(1); seq <= 5; seq++ {
		pb.Store(messages.PlayerInput{Sequence: seq}, float64(seq), 0)
	}

	unacked := pb.GetUnacknowledged(2)
	if len(unacked) != 3 {
		t.Fatalf("unacked = %d records, want 3", len(unacked))
	}
	if unacked[0].Input.Sequence != 3 || unacked[2].Input.Sequence != 5 {
		t.Errorf("unacked range = [%d..%d], want [3..5]",
			unacked[0].Input.Sequence, unacked[2].Input.Sequence)
	}
}

func TestPredictionError(t *testing.T) {
	var pb PredictionBuffer
	pb.Store(messages.PlayerInput{Sequence: 9}, 3, 4)

	if err := pb.PredictionError(9, 0, 0); err != 5 {
		t.Errorf("PredictionError = %g, want 5", err)
	}
	if err := pb.PredictionError(42, 0, 0); err != 0 {
		t.Errorf("missing sequence error = %g, want 0", err)
	}
}
