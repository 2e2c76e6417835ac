// Package crmvc - Test visibility resolver: tập owner nhìn thấy theo role.
package crmvc

import (
	"testing"

	authmodels "sales_crm/internal/api/auth/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cây tổ chức hai nhánh dùng chung cho các test:
// supervisor -> director1 -> manager1 -> agent1
//            -> director2 -> manager2 -> agent2
type orgFixture struct {
	supervisor, director1, director2 authmodels.User
	manager1, manager2               authmodels.User
	agent1, agent2, support          authmodels.User
	users                            []authmodels.User
}

func newOrgFixture() orgFixture {
	f := orgFixture{}
	f.supervisor = authmodels.User{ID: primitive.NewObjectID(), Role: authmodels.RoleSupervisor}
	f.director1 = authmodels.User{ID: primitive.NewObjectID(), Role: authmodels.RoleDirector, SupervisorID: f.supervisor.ID}
	f.director2 = authmodels.User{ID: primitive.NewObjectID(), Role: authmodels.RoleDirector, SupervisorID: f.supervisor.ID}
	f.manager1 = authmodels.User{ID: primitive.NewObjectID(), Role: authmodels.RoleManager, SupervisorID: f.director1.ID}
	f.manager2 = authmodels.User{ID: primitive.NewObjectID(), Role: authmodels.RoleManager, SupervisorID: f.director2.ID}
	f.agent1 = authmodels.User{ID: primitive.NewObjectID(), Role: authmodels.RoleAgent, SupervisorID: f.manager1.ID}
	f.agent2 = authmodels.User{ID: primitive.NewObjectID(), Role: authmodels.RoleAgent, SupervisorID: f.manager2.ID}
	f.support = authmodels.User{ID: primitive.NewObjectID(), Role: authmodels.RoleSupport}
	f.users = []authmodels.User{f.supervisor, f.director1, f.director2, f.manager1, f.manager2, f.agent1, f.agent2, f.support}
	return f
}

func TestVisibleOwnerSet_Supervisor(t *testing.T) {
	f := newOrgFixture()
	owners, all := VisibleOwnerSet(f.supervisor, f.users)
	if !all {
		t.Error("supervisor phải thấy tất cả (all = true)")
	}
	if owners != nil {
		t.Errorf("đường all không cần tập owner, nhận được %v", owners)
	}
}

func TestVisibleOwnerSet_Director(t *testing.T) {
	f := newOrgFixture()
	owners, all := VisibleOwnerSet(f.director1, f.users)
	if all {
		t.Fatal("director không được đi đường all")
	}

	for name, id := range map[string]primitive.ObjectID{
		"chính mình": f.director1.ID,
		"manager1":   f.manager1.ID,
		"agent1":     f.agent1.ID,
	} {
		if !owners[id] {
			t.Errorf("director1 phải thấy %s", name)
		}
	}
	for name, id := range map[string]primitive.ObjectID{
		"director2": f.director2.ID,
		"manager2":  f.manager2.ID,
		"agent2":    f.agent2.ID,
	} {
		if owners[id] {
			t.Errorf("director1 không được thấy %s ở nhánh khác", name)
		}
	}
}

func TestVisibleOwnerSet_Manager(t *testing.T) {
	f := newOrgFixture()
	owners, all := VisibleOwnerSet(f.manager1, f.users)
	if all {
		t.Fatal("manager không được đi đường all")
	}
	if !owners[f.manager1.ID] || !owners[f.agent1.ID] {
		t.Error("manager phải thấy chính mình và cấp dưới trực tiếp")
	}
	if owners[f.agent2.ID] || owners[f.director1.ID] {
		t.Error("manager không được thấy ngoài nhánh của mình")
	}
}

func TestVisibleOwnerSet_Agent(t *testing.T) {
	f := newOrgFixture()
	owners, all := VisibleOwnerSet(f.agent1, f.users)
	if all {
		t.Fatal("agent không được đi đường all")
	}
	if len(owners) != 1 || !owners[f.agent1.ID] {
		t.Errorf("agent chỉ thấy chính mình, nhận được %v", owners)
	}
}

func TestVisibleOwnerSet_FailClosed(t *testing.T) {
	f := newOrgFixture()

	// support: tập rỗng
	owners, all := VisibleOwnerSet(f.support, f.users)
	if all || len(owners) != 0 {
		t.Errorf("support phải không thấy gì, nhận được all=%v owners=%v", all, owners)
	}

	// role lạ: cũng tập rỗng, không bao giờ mở rộng
	stranger := authmodels.User{ID: primitive.NewObjectID(), Role: "intern"}
	owners, all = VisibleOwnerSet(stranger, f.users)
	if all || len(owners) != 0 {
		t.Errorf("role lạ phải fail closed, nhận được all=%v owners=%v", all, owners)
	}
}

func TestVisibleOwnerSet_Monotonicity(t *testing.T) {
	// Tập của agent1 nằm trong tập của manager1, tập của manager1
	// nằm trong tập của director1
	f := newOrgFixture()

	agentSet, _ := VisibleOwnerSet(f.agent1, f.users)
	managerSet, _ := VisibleOwnerSet(f.manager1, f.users)
	directorSet, _ := VisibleOwnerSet(f.director1, f.users)

	for id := range agentSet {
		if !managerSet[id] {
			t.Errorf("tập của agent phải nằm trong tập của manager, thiếu %s", id.Hex())
		}
	}
	for id := range managerSet {
		if !directorSet[id] {
			t.Errorf("tập của manager phải nằm trong tập của director, thiếu %s", id.Hex())
		}
	}
}

func TestVisibleOwnerSet_DirectorDirectAgentReport(t *testing.T) {
	// Agent báo cáo thẳng cho director (không qua manager) KHÔNG thuộc
	// tập của director: quét cấp dưới chỉ đi qua manager
	f := newOrgFixture()
	directAgent := authmodels.User{ID: primitive.NewObjectID(), Role: authmodels.RoleAgent, SupervisorID: f.director1.ID}
	users := append(f.users, directAgent)

	owners, _ := VisibleOwnerSet(f.director1, users)
	if owners[directAgent.ID] {
		t.Error("cấp dưới trực tiếp không phải manager không thuộc tập của director")
	}
}
