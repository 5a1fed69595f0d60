package bot

import (
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/catalog-bot/internal/dialog"
	"github.com/Spok95/catalog-bot/internal/domain/catalog"
	"github.com/Spok95/catalog-bot/internal/domain/inquiries"
	"github.com/Spok95/catalog-bot/internal/domain/media"
	"github.com/Spok95/catalog-bot/internal/engine"
)

const chat int64 = 100

func TestMessagesText(t *testing.T) {
	r := engine.Reply{
		Text:    "Choose a category:",
		Buttons: [][]engine.Button{{{Text: "A (1)", Data: "category:product:1"}}, {{Text: "Back", Data: "back"}}},
	}
	out := messages(chat, r)
	if len(out) != 1 {
		t.Fatalf("got %d messages, want 1", len(out))
	}
	msg, ok := out[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("got %T, want MessageConfig", out[0])
	}
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("markup = %T, want inline keyboard", msg.ReplyMarkup)
	}
	if len(kb.InlineKeyboard) != 2 || *kb.InlineKeyboard[1][0].CallbackData != "back" {
		t.Fatalf("keyboard = %+v", kb.InlineKeyboard)
	}
}

func TestMessagesMenu(t *testing.T) {
	out := messages(chat, engine.Reply{Text: "Welcome", Menu: true})
	msg := out[0].(tgbotapi.MessageConfig)
	kb, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	if !ok {
		t.Fatalf("markup = %T, want reply keyboard", msg.ReplyMarkup)
	}
	if kb.Keyboard[0][0].Text != engine.MenuProducts {
		t.Fatalf("first button = %q", kb.Keyboard[0][0].Text)
	}
}

func TestMessagesMediaCaption(t *testing.T) {
	photo := media.Media{FileID: "AgAC", Kind: media.KindPhoto}
	r := engine.Reply{Text: "DSO-1000", Media: &photo, Buttons: [][]engine.Button{{{Text: "Back", Data: "back"}}}}

	out := messages(chat, r)
	if len(out) != 1 {
		t.Fatalf("got %d messages, want 1", len(out))
	}
	p, ok := out[0].(tgbotapi.PhotoConfig)
	if !ok {
		t.Fatalf("got %T, want PhotoConfig", out[0])
	}
	if p.Caption != "DSO-1000" || p.ReplyMarkup == nil {
		t.Fatalf("photo = %+v", p)
	}

	// длинное описание не влезает в подпись
	r.Text = strings.Repeat("x", maxCaptionLen+1)
	video := media.Media{FileID: "BAAC", Kind: media.KindVideo}
	r.Media = &video
	out = messages(chat, r)
	if len(out) != 2 {
		t.Fatalf("got %d messages, want 2", len(out))
	}
	if v := out[0].(tgbotapi.VideoConfig); v.Caption != "" || v.ReplyMarkup != nil {
		t.Fatalf("video = %+v, want bare file", v)
	}
	if m := out[1].(tgbotapi.MessageConfig); m.ReplyMarkup == nil {
		t.Fatal("keyboard must follow the text")
	}
}

func TestAlbumChunks(t *testing.T) {
	list := make([]media.Media, 11)
	for i := range list {
		list[i] = media.Media{ItemType: catalog.TypeProduct, FileID: "f", Kind: media.KindPhoto}
	}
	list[3].Kind = media.KindVideo

	out := messages(chat, engine.Reply{Album: list})
	if len(out) != 2 {
		t.Fatalf("got %d messages, want 2", len(out))
	}
	mg, ok := out[0].(tgbotapi.MediaGroupConfig)
	if !ok || len(mg.Media) != maxAlbumSize {
		t.Fatalf("first = %T with %d files", out[0], len(mg.Media))
	}
	if _, ok := mg.Media[3].(tgbotapi.InputMediaVideo); !ok {
		t.Fatalf("media[3] = %T, want video", mg.Media[3])
	}
	if _, ok := out[1].(tgbotapi.PhotoConfig); !ok {
		t.Fatalf("tail = %T, want single photo", out[1])
	}
}

func TestEditMessage(t *testing.T) {
	nav := engine.Reply{Text: "Products", Buttons: [][]engine.Button{{{Text: "A", Data: "category:product:1"}}}}
	c, ok := editMessage(chat, 7, nav)
	if !ok {
		t.Fatal("navigation screen must be editable")
	}
	if e := c.(tgbotapi.EditMessageTextConfig); e.MessageID != 7 || e.Text != "Products" || e.ReplyMarkup == nil {
		t.Fatalf("edit = %+v", e)
	}

	photo := media.Media{FileID: "x"}
	for name, r := range map[string]engine.Reply{
		"notice": {Text: "This section is no longer available."},
		"menu":   {Text: "Thanks", Menu: true},
		"media":  {Text: "card", Media: &photo, Buttons: nav.Buttons},
		"album":  {Album: []media.Media{photo, photo}},
	} {
		if _, ok := editMessage(chat, 7, r); ok {
			t.Errorf("%s: must be sent as a new message", name)
		}
	}
}

func TestSplitText(t *testing.T) {
	if got := splitText("short", 10); len(got) != 1 || got[0] != "short" {
		t.Fatalf("got %q", got)
	}

	s := "aaaa\nbbbb\ncccc"
	got := splitText(s, 10)
	if strings.Join(got, "") != s {
		t.Fatalf("parts %q do not join back", got)
	}
	for _, p := range got {
		if len([]rune(p)) > 10 {
			t.Fatalf("part %q longer than limit", p)
		}
	}

	long := strings.Repeat("я", 25)
	got = splitText(long, 10)
	if len(got) != 3 || strings.Join(got, "") != long {
		t.Fatalf("got %q", got)
	}
}

func TestShardStable(t *testing.T) {
	for _, id := range []int64{1, 42, 7_000_000_123} {
		if shard(id, 4) != shard(id, 4) {
			t.Fatalf("shard(%d) not stable", id)
		}
		if s := shard(id, 4); s < 0 || s >= 4 {
			t.Fatalf("shard(%d) = %d", id, s)
		}
	}
}

func TestInquiryText(t *testing.T) {
	text := inquiryText(inquiriesFixture(nil), nil, "@ali")
	for _, want := range []string{"#3", "general inquiry", "Ali Rezaei", "09121234567", "need price", "From: @ali"} {
		if !strings.Contains(text, want) {
			t.Errorf("text %q missing %q", text, want)
		}
	}
}

func TestInquiryTextWithItem(t *testing.T) {
	id := int64(5)
	item := &dialog.ItemRef{Type: catalog.TypeProduct, ID: 5, Name: "DSO-1000"}
	text := inquiryText(inquiriesFixture(&id), item, "id 42")
	if !strings.Contains(text, "Item: DSO-1000 (product #5)") || !strings.Contains(text, "From: id 42") {
		t.Fatalf("text = %q", text)
	}
}

func inquiriesFixture(productID *int64) inquiries.Inquiry {
	return inquiries.Inquiry{ID: 3, UserID: 42, Name: "Ali Rezaei", Phone: "09121234567", Description: "need price", ProductID: productID}
}
