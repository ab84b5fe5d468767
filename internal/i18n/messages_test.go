package i18n

import "testing"

func TestMessage_LocaleFallback(t *testing.T) {
	en := Message("en", CodeRequired, "Size")
	if en != "please select Size" {
		t.Fatalf("unexpected en message %q", en)
	}

	cs := Message("cs", CodeRequired, "velikost")
	if cs != "vyberte prosím velikost" {
		t.Fatalf("unexpected cs message %q", cs)
	}

	// Unknown locale falls back to the default table.
	if got := Message("de", CodeRequired, "Size"); got != en {
		t.Fatalf("expected default-locale fallback, got %q", got)
	}

	// Unknown code falls back to the bare code.
	if got := Message("en", "noSuchCode"); got != "noSuchCode" {
		t.Fatalf("expected bare code, got %q", got)
	}
}

func TestMessage_LocaleNormalized(t *testing.T) {
	if got := Message(" CS ", CodeCustomTextEmpty, "text"); got != "text pro text nesmí být prázdný" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestLocalized(t *testing.T) {
	texts := map[string]string{"en": "Ribbon", "cs": "Stuha"}

	if got := Localized(texts, "cs"); got != "Stuha" {
		t.Fatalf("expected Stuha, got %q", got)
	}
	if got := Localized(texts, "de"); got != "Ribbon" {
		t.Fatalf("expected default fallback, got %q", got)
	}
	if got := Localized(map[string]string{"cs": "Stuha"}, "de"); got != "Stuha" {
		t.Fatalf("expected any-value fallback, got %q", got)
	}
	if got := Localized(nil, "en"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
