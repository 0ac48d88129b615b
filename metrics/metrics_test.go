package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordPermissionSave(t *testing.T) {
	var ok = testutil.ToFloat64(permissionSaves.WithLabelValues("ok"))
	var rejected = testutil.ToFloat64(permissionSaves.WithLabelValues("rejected"))

	RecordPermissionSave(true, 2)
	RecordPermissionSave(false, 0)
	RecordPermissionSave(false, 0)

	assert.Equal(t, ok+1, testutil.ToFloat64(permissionSaves.WithLabelValues("ok")))
	assert.Equal(t, rejected+2, testutil.ToFloat64(permissionSaves.WithLabelValues("rejected")))
}

func TestRecordFormEvent(t *testing.T) {
	var before = testutil.ToFloat64(formEvents.WithLabelValues("add"))
	RecordFormEvent("add")
	assert.Equal(t, before+1, testutil.ToFloat64(formEvents.WithLabelValues("add")))
}

func TestRecordLogin(t *testing.T) {
	var before = testutil.ToFloat64(logins.WithLabelValues("rejected"))
	RecordLogin(false)
	assert.Equal(t, before+1, testutil.ToFloat64(logins.WithLabelValues("rejected")))
}
