package db_models

// All lists every table the service owns, in dependency order.
func All() []interface{} {
	return []interface{}{
		&Family{},
		&Child{},
		&Contribution{},
		&Milestone{},
		&Interaction{},
		&Connection{},
		&Goal{},
		&GiftRegistry{},
		&Achievement{},
		&Notification{},
		&LiteracyProgress{},
		&ChallengeParticipant{},
		&OutboxTask{},
	}
}
