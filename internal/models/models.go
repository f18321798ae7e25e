package model

// All lists every persisted document type, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Group{},
		&Task{},
		&Transaction{},
		&Withdrawal{},
		&WalletEntry{},
	}
}
