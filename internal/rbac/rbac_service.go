package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Three tiers: EMPLOYEE < MANAGER < MAINTAINER. Policies are static, so
// the enforcer runs on an in-memory model with no storage adapter.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

type Service interface {
	Check(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{"EMPLOYEE", "timerecord", "create"},
		{"EMPLOYEE", "timerecord", "read"},
		{"EMPLOYEE", "timerecord", "toggle"},
		{"EMPLOYEE", "anomaly", "read"},
		{"EMPLOYEE", "workhour", "read"},
		{"EMPLOYEE", "schedule", "read"},
		{"EMPLOYEE", "adjustment", "create"},
		{"EMPLOYEE", "adjustment", "read"},

		{"MANAGER", "timerecord", "admin"},
		{"MANAGER", "anomaly", "read_all"},
		{"MANAGER", "workhour", "read_all"},
		{"MANAGER", "schedule", "write"},
		{"MANAGER", "holiday", "write"},
		{"MANAGER", "adjustment", "review"},
		{"MANAGER", "payroll", "close"},
		{"MANAGER", "user", "manage"},
		{"MANAGER", "biometric", "manage"},
		{"MANAGER", "audit", "read"},

		{"MAINTAINER", "payroll", "reopen"},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	groupings := [][]string{
		{"MANAGER", "EMPLOYEE"},
		{"MAINTAINER", "MANAGER"},
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: e}, nil
}

func (s *service) Check(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}
