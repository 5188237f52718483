package memory

import "context"

type trxKey struct{}

// contextWithTrx tags ctx with the id of an open transaction. Writes find
// their staging area through it.
func contextWithTrx(ctx context.Context, trxID string) context.Context {
	return context.WithValue(ctx, trxKey{}, trxID)
}

func trxIDFrom(ctx context.Context) (string, bool) {
	trxID, ok := ctx.Value(trxKey{}).(string)
	if !ok || trxID == "" {
		return "", false
	}

	return trxID, true
}
