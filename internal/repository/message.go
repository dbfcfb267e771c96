package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/pushpitkamboj/lyftrAI-assignment/internal/database"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/model"
)

var ErrStorageUnavailable = errors.New("STORAGE_UNAVAILABLE")

// Filters narrow a message listing. Zero values impose no constraint;
// all present filters apply together.
type Filters struct {
	From  string
	Since *time.Time
	Q     string
}

type SenderCount struct {
	From  string `gorm:"column:from_msisdn"`
	Count int64  `gorm:"column:count"`
}

type AggregateResult struct {
	TotalMessages int64
	SendersCount  int64
	PerSender     []SenderCount
	FirstTS       *time.Time
	LastTS        *time.Time
}

type MessageRepository interface {
	// InsertIfAbsent writes the message unless one with the same
	// message_id already exists. The unique key makes the insert atomic
	// under concurrent deliveries; exactly one caller observes created.
	InsertIfAbsent(ctx context.Context, message *model.Message) (created bool, err error)
	Query(ctx context.Context, filters Filters, limit, offset int) ([]model.Message, int64, error)
	Aggregate(ctx context.Context) (AggregateResult, error)
	Ping(ctx context.Context) error
}

type Message struct {
	conn *database.Conn
}

func NewMessageRepository(conn *database.Conn) MessageRepository {
	return &Message{conn: conn}
}

func (m *Message) db(ctx context.Context) (*gorm.DB, error) {
	db, err := m.conn.DB(ctx)
	if err != nil {
		return nil, ErrStorageUnavailable
	}
	return db.WithContext(ctx), nil
}

func (m *Message) InsertIfAbsent(ctx context.Context, message *model.Message) (bool, error) {
	db, err := m.db(ctx)
	if err != nil {
		return false, err
	}

	err = db.Create(message).Error
	if err == nil {
		return true, nil
	}

	if isDuplicateKeyErr(err) {
		return false, nil
	}

	return false, err
}

func (m *Message) Query(ctx context.Context, filters Filters, limit, offset int) ([]model.Message, int64, error) {
	db, err := m.db(ctx)
	if err != nil {
		return nil, 0, err
	}

	base := applyFilters(db.Model(&model.Message{}), filters)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []model.Message
	err = applyFilters(db.Model(&model.Message{}), filters).
		Order("ts ASC, message_id ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (m *Message) Aggregate(ctx context.Context) (AggregateResult, error) {
	db, err := m.db(ctx)
	if err != nil {
		return AggregateResult{}, err
	}

	var result AggregateResult

	if err := db.Model(&model.Message{}).Count(&result.TotalMessages).Error; err != nil {
		return AggregateResult{}, err
	}

	err = db.Model(&model.Message{}).
		Distinct("from_msisdn").
		Count(&result.SendersCount).Error
	if err != nil {
		return AggregateResult{}, err
	}

	err = db.Model(&model.Message{}).
		Select("from_msisdn, COUNT(*) AS count").
		Group("from_msisdn").
		Order("count DESC, from_msisdn ASC").
		Scan(&result.PerSender).Error
	if err != nil {
		return AggregateResult{}, err
	}

	// Bounds stay nil for an empty store; no zero-value timestamp ever
	// masquerades as data.
	if result.TotalMessages > 0 {
		var first, last model.Message
		if err := db.Order("ts ASC, message_id ASC").First(&first).Error; err != nil {
			return AggregateResult{}, err
		}
		if err := db.Order("ts DESC, message_id DESC").First(&last).Error; err != nil {
			return AggregateResult{}, err
		}
		result.FirstTS = &first.TS
		result.LastTS = &last.TS
	}

	return result, nil
}

func (m *Message) Ping(ctx context.Context) error {
	if err := m.conn.Ping(ctx); err != nil {
		return ErrStorageUnavailable
	}
	return nil
}

func applyFilters(db *gorm.DB, filters Filters) *gorm.DB {
	if filters.From != "" {
		db = db.Where("from_msisdn = ?", filters.From)
	}
	if filters.Since != nil {
		db = db.Where("ts >= ?", *filters.Since)
	}
	if filters.Q != "" {
		db = db.Where("LOWER(text) LIKE ? ESCAPE '!'",
			"%"+escapeLike(strings.ToLower(filters.Q))+"%")
	}
	return db
}

// escapeLike keeps q a literal substring match by neutralizing LIKE
// metacharacters. The explicit ESCAPE '!' also displaces mysql's default
// backslash escaping, so backslashes in q stay literal on both drivers.
func escapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}

func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return true
	}

	return false
}
