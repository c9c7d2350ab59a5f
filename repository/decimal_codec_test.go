package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type amountRow struct {
	Amount decimal.Decimal `bson:"amount"`
}

func TestDecimalStoredAsDecimal128(t *testing.T) {
	reg := NewRegistry()
	data, err := bson.MarshalWithRegistry(reg, amountRow{Amount: decimal.RequireFromString("1234.56")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if typ := bson.Raw(data).Lookup("amount").Type; typ != bsontype.Decimal128 {
		t.Fatalf("amount stored as %s, want decimal128", typ)
	}

	var got amountRow
	if err := bson.UnmarshalWithRegistry(reg, data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Amount.Equal(decimal.RequireFromString("1234.56")) {
		t.Fatalf("amount = %s", got.Amount)
	}
}

func TestDecimalDecodesLegacyTypes(t *testing.T) {
	reg := NewRegistry()
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"double", 12.5, "12.5"},
		{"int32", int32(300), "300"},
		{"int64", int64(1000), "1000"},
		{"string", "199.99", "199.99"},
		{"comma string", "1,5", "1.5"},
		{"null", nil, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := bson.Marshal(bson.M{"amount": tt.value})
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var got amountRow
			if err := bson.UnmarshalWithRegistry(reg, data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !got.Amount.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("amount = %s, want %s", got.Amount, tt.want)
			}
		})
	}
}

func TestDecimalRejectsMalformedValues(t *testing.T) {
	reg := NewRegistry()
	for _, value := range []interface{}{"abc", "1,000", true} {
		data, err := bson.Marshal(bson.M{"amount": value})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var got amountRow
		if err := bson.UnmarshalWithRegistry(reg, data, &got); err == nil {
			t.Errorf("expected error decoding %v, got %s", value, got.Amount)
		}
	}
}
