package rbac

import (
	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// policies maps each role onto the resource/action pairs it may perform.
// The role set is fixed (see internal/domain), so the policy lives in code
// instead of a database-backed adapter.
var policies = [][]string{
	{"ADMIN", "user", "create"},
	{"ADMIN", "user", "read"},
	{"ADMIN", "user", "update"},
	{"ADMIN", "user", "delete"},

	{"ADMIN", "leave", "read"},
	{"HOD", "leave", "read"},
	{"STAFF", "leave", "read"},

	{"ADMIN", "leave", "read_own"},
	{"HOD", "leave", "read_own"},
	{"STAFF", "leave", "read_own"},
	{"STUDENT", "leave", "read_own"},

	{"ADMIN", "leave", "create"},
	{"HOD", "leave", "create"},
	{"STAFF", "leave", "create"},
	{"STUDENT", "leave", "create"},

	{"ADMIN", "leave", "approve"},
	{"HOD", "leave", "approve"},
	{"STAFF", "leave", "approve"},

	{"ADMIN", "leave", "edit"},
	{"STAFF", "leave", "edit"},
	{"STUDENT", "leave", "edit"},

	{"ADMIN", "leave", "delete"},
	{"STAFF", "leave", "delete"},
	{"STUDENT", "leave", "delete"},

	{"ADMIN", "balance", "read"},
	{"STAFF", "balance", "read"},
	{"STUDENT", "balance", "read"},

	{"ADMIN", "dashboard", "read"},
	{"HOD", "dashboard", "read"},
	{"STAFF", "dashboard", "read"},
	{"STUDENT", "dashboard", "read"},

	{"ADMIN", "approver", "read"},
	{"STAFF", "approver", "read"},
	{"STUDENT", "approver", "read"},

	{"ADMIN", "notification", "read"},
	{"HOD", "notification", "read"},
	{"STAFF", "notification", "read"},
	{"STUDENT", "notification", "read"},
}

// NewEnforcer builds a casbin enforcer with the static campus policy loaded.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := casbinmodel.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
