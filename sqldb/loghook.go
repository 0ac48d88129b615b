package sqldb

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// LogHook is a logrus hook which writes entries of level info and above into the log_entry table.
type LogHook struct {
	insert *sql.Stmt
	levels []logrus.Level
}

func NewLogHook(db *sql.DB) *LogHook {

	mustExec(db, `
		CREATE TABLE IF NOT EXISTS log_entry (
			ts bigint NOT NULL,
			level varchar(16) NOT NULL,
			msg text NOT NULL,
			fields text NOT NULL
		);`)

	return &LogHook{
		insert: mustPrepare(db, "INSERT INTO log_entry (ts, level, msg, fields) VALUES (?, ?, ?, ?)"),
		levels: []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
			logrus.WarnLevel,
			logrus.InfoLevel,
		},
	}
}

func (h *LogHook) Levels() []logrus.Level {
	return h.levels
}

func (h *LogHook) Fire(entry *logrus.Entry) error {

	var fields = make(map[string]interface{}, len(entry.Data))
	for k, v := range entry.Data {
		if err, ok := v.(error); ok {
			fields[k] = err.Error() // errors marshal to {} otherwise
		} else {
			fields[k] = v
		}
	}

	data, err := json.Marshal(fields)
	if err != nil {
		data = []byte(fmt.Sprintf(`{"marshal_error":%q}`, err.Error()))
	}

	_, err = h.insert.Exec(entry.Time.UnixNano(), entry.Level.String(), entry.Message, string(data))
	return err
}
