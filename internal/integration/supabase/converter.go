package supabase

import "github.com/futig/scopeguard/internal/entity"

func toRow(record *entity.ChatRecord) *entity.ChatHistoryRow {
	return &entity.ChatHistoryRow{
		ID:           entity.RowID(record.ID),
		UserID:       record.UserID,
		Title:        record.Title,
		ContractText: record.ContractText,
		ClientEmail:  record.ClientEmail,
		AIResponse:   record.AIResponse,
	}
}

func toRecord(row *entity.ChatHistoryRow) *entity.ChatRecord {
	record := &entity.ChatRecord{
		ID:           string(row.ID),
		UserID:       row.UserID,
		Title:        row.Title,
		ContractText: row.ContractText,
		ClientEmail:  row.ClientEmail,
		AIResponse:   row.AIResponse,
	}

	if row.CreatedAt != nil {
		record.CreatedAt = *row.CreatedAt
	}

	return record
}
