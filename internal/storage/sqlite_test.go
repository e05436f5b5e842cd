package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some runs
	if _, err = store.SaveScore("demo", 100, 8); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err = store.SaveScore("demo", 50, 3); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err = store.SaveScore("demo", 200, 14); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different song
	if _, err = store.SaveScore("moon_river", 500, 30); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("demo", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[0].MaxCombo != 14 {
		t.Errorf("Expected top entry 200/14, got %d/%d", scores[0].Score, scores[0].MaxCombo)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	otherScores, err := store.TopScores("moon_river", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(otherScores) != 1 {
		t.Errorf("Expected 1 score for moon_river, got %d", len(otherScores))
	}
}

func TestStoreHighScoreAndBestCombo(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := Open(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Empty database returns zeros
	high, err := store.HighScore("demo")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty database, got %d", high)
	}

	store.SaveScore("demo", 120, 9)
	store.SaveScore("demo", 340, 21)
	store.SaveScore("demo", 260, 33)

	high, err = store.HighScore("demo")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 340 {
		t.Errorf("Expected high score 340, got %d", high)
	}

	combo, err := store.BestCombo("demo")
	if err != nil {
		t.Fatalf("BestCombo() failed: %v", err)
	}
	if combo != 33 {
		t.Errorf("Expected best combo 33, got %d", combo)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := Open(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 15; i++ {
		store.SaveScore("demo", i*10, i)
	}

	scores, err := store.TopScores("demo", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores with limit 5, got %d", len(scores))
	}
}
