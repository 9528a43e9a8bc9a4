package ledger

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/code-sleuth/vektara-go/pkg/db"
	"github.com/code-sleuth/vektara-go/pkg/vektara"
)

func setupTestLedger(t *testing.T) *Ledger {
	t.Helper()

	if os.Getenv("VEKTARA_LEDGER_DB_URL") == "" || os.Getenv("VEKTARA_LEDGER_AUTH_TOKEN") == "" {
		t.Skip("Ledger database environment variables not set - skipping integration test")
	}

	database, err := db.NewConnection()
	if err != nil {
		t.Fatalf("Failed to connect to ledger database: %v", err)
	}
	t.Cleanup(func() {
		_, _ = database.Exec("DELETE FROM uploads WHERE corpus_id = ?", testCorpusID)
		database.Close()
	})

	ledger := New(database)
	if err := ledger.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return ledger
}

const testCorpusID = 999999

func TestLedgerRecordAndList(t *testing.T) {
	ledger := setupTestLedger(t)
	ctx := context.Background()

	records := []vektara.UploadRecord{
		{CorpusID: testCorpusID, Path: "/tmp/a.txt", DocID: "a.txt", OK: true, At: time.Now().UTC()},
		{CorpusID: testCorpusID, Path: "/tmp/b.txt", DocID: "b.txt", OK: false, Detail: "status 500", At: time.Now().UTC()},
	}
	for _, rec := range records {
		if err := ledger.RecordUpload(ctx, rec); err != nil {
			t.Fatalf("Failed to record upload: %v", err)
		}
	}

	got, err := ledger.ListByCorpus(ctx, testCorpusID)
	if err != nil {
		t.Fatalf("Failed to list uploads: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(got))
	}

	okCount := 0
	for _, rec := range got {
		if rec.OK {
			okCount++
			continue
		}
		if rec.Detail == "" {
			t.Error("Expected failure detail on failed record")
		}
	}
	if okCount != 1 {
		t.Errorf("Expected exactly 1 successful record, got %d", okCount)
	}
}
