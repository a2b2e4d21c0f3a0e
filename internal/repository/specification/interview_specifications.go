package specification

import "gorm.io/gorm"

type BySessionKey struct {
	SessionKey string
}

func (s BySessionKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_key = ?", s.SessionKey)
}

// BySource selects context snippets tagged {type, ref_id}.
type BySource struct {
	Type  string
	RefId string
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ? AND ref_id = ?", s.Type, s.RefId)
}
