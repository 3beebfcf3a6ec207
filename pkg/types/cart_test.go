package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartItemDecodesLegacyStrings(t *testing.T) {
	payload := []byte(`{"cart_id":"12","product_id":4,"name":"Wheat Seed","image":"wheat.jpg","price":"25.50","quantity":"3","total":"76.50"}`)

	var item CartItem
	if err := json.Unmarshal(payload, &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if item.CartID != 12 || item.ProductID != 4 || item.Quantity != 3 {
		t.Fatalf("unexpected ids: %+v", item)
	}
	if !item.Price.Equal(decimal.RequireFromString("25.50")) {
		t.Fatalf("unexpected price %s", item.Price)
	}
	if !item.LineTotal().Equal(decimal.RequireFromString("76.50")) {
		t.Fatalf("unexpected line total %s", item.LineTotal())
	}
}

func TestSnapshotTotalUsesRecomputedLineTotals(t *testing.T) {
	snap := CartSnapshot{Items: []CartItem{
		{Price: decimal.RequireFromString("10.00"), Quantity: 2, Total: decimal.RequireFromString("999")},
		{Price: decimal.RequireFromString("2.25"), Quantity: 4, Total: decimal.RequireFromString("9.00")},
	}}

	// The server-supplied totals are ignored in favor of price × quantity.
	if want := decimal.RequireFromString("29.00"); !snap.Total().Equal(want) {
		t.Fatalf("expected %s got %s", want, snap.Total())
	}
}

func TestUserProfileDecodesAnyIDKey(t *testing.T) {
	cases := map[string]string{
		"userid":  `{"userid":"7","name":"Asha","email":"a@x.lk","role":"Farmer"}`,
		"user_id": `{"user_id":7,"name":"Asha","email":"a@x.lk","role":"farmer"}`,
		"id":      `{"id":7,"name":"Asha","email":"a@x.lk","role":"FARMER"}`,
	}
	for key, payload := range cases {
		var p UserProfile
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			t.Fatalf("%s: %v", key, err)
		}
		if p.UserID != 7 {
			t.Fatalf("%s: expected user id 7, got %d", key, p.UserID)
		}
		if p.Role != "Farmer" {
			t.Fatalf("%s: expected Farmer, got %s", key, p.Role)
		}
	}
}

func TestUserProfileUnknownRoleDegradesToFarmer(t *testing.T) {
	var p UserProfile
	if err := json.Unmarshal([]byte(`{"userid":1,"role":"Vendor"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Role != "Farmer" {
		t.Fatalf("expected Farmer fallback, got %s", p.Role)
	}
}

func TestFlexIntRoundTrip(t *testing.T) {
	var f FlexInt
	if err := json.Unmarshal([]byte(`""`), &f); err != nil || f != 0 {
		t.Fatalf("empty string: %v %d", err, f)
	}
	if err := json.Unmarshal([]byte(`null`), &f); err != nil || f != 0 {
		t.Fatalf("null: %v %d", err, f)
	}
	if err := json.Unmarshal([]byte(`"abc"`), &f); err == nil {
		t.Fatal("expected error for non-numeric string")
	}

	out, err := json.Marshal(FlexInt(42))
	if err != nil || string(out) != "42" {
		t.Fatalf("marshal: %v %s", err, out)
	}
}
