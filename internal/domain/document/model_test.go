package document

import "testing"

func TestDocumentValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     Document
		wantErr bool
	}{
		{name: "valid", doc: Document{Collection: CollectionMatches, Key: "42", Data: []byte(`{}`)}},
		{name: "missing collection", doc: Document{Key: "42", Data: []byte(`{}`)}, wantErr: true},
		{name: "blank key", doc: Document{Collection: CollectionMatches, Key: "  ", Data: []byte(`{}`)}, wantErr: true},
		{name: "empty data", doc: Document{Collection: CollectionLeagues, Key: LeaguesKey}, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.doc.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDocumentPath(t *testing.T) {
	t.Parallel()

	doc := Document{Collection: CollectionFixtures, Key: "2026-10-16"}
	if got := doc.Path(); got != "fixtures/2026-10-16" {
		t.Fatalf("unexpected path: %s", got)
	}
}
