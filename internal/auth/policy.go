package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/shenikar/incident_reporting_system/internal/models"
)

// Объекты и действия политики доступа
const (
	ObjectIncidents     = "incidents"
	ObjectNotifications = "notifications"
	ObjectAnalytics     = "analytics"
	ObjectDashboard     = "dashboard"
	ObjectFeed          = "feed"

	ActionCreate       = "create"
	ActionRead         = "read"
	ActionUpdate       = "update"
	ActionUpdateStatus = "update_status"
	ActionAssign       = "assign"
	ActionReadPending  = "read_pending"
	ActionReadAssigned = "read_assigned"
	ActionTrack        = "track"
)

const roleStaff = "staff"

const policyModel = `
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

// Policy - ролевая модель доступа поверх casbin
type Policy struct {
	enforcer *casbin.Enforcer
}

// NewPolicy строит политику в памяти. Сотрудники (POLICE, NGO, WATCH)
// наследуют все права граждан.
func NewPolicy() (*Policy, error) {
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse policy model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	citizen := string(models.RoleCitizen)
	if _, err := enforcer.AddPolicies([][]string{
		{citizen, ObjectIncidents, ActionCreate},
		{citizen, ObjectIncidents, ActionRead},
		{citizen, ObjectNotifications, ActionRead},
		{citizen, ObjectNotifications, ActionUpdate},
		{citizen, ObjectAnalytics, ActionTrack},
		{citizen, ObjectAnalytics, ActionRead},
		{citizen, ObjectFeed, ActionRead},
		{roleStaff, ObjectIncidents, ActionUpdateStatus},
		{roleStaff, ObjectIncidents, ActionAssign},
		{roleStaff, ObjectIncidents, ActionReadPending},
		{roleStaff, ObjectIncidents, ActionReadAssigned},
		{roleStaff, ObjectDashboard, ActionRead},
	}); err != nil {
		return nil, fmt.Errorf("failed to add policies: %w", err)
	}

	if _, err := enforcer.AddGroupingPolicies([][]string{
		{roleStaff, citizen},
		{string(models.RolePolice), roleStaff},
		{string(models.RoleNGO), roleStaff},
		{string(models.RoleWatch), roleStaff},
	}); err != nil {
		return nil, fmt.Errorf("failed to add role inheritance: %w", err)
	}

	return &Policy{enforcer: enforcer}, nil
}

// Allowed проверяет, может ли роль выполнить действие над объектом
func (p *Policy) Allowed(role models.Role, object, action string) (bool, error) {
	return p.enforcer.Enforce(string(role), object, action)
}
