package framework

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
)

func boolPtr(v bool) *bool { return &v }

func TestMatchLargeListedFinanceEU(t *testing.T) {
	profile := &model.OrganizationProfile{
		Sector:       "finance",
		RevenueBand:  model.RevenueLarge,
		Listed:       boolPtr(true),
		Jurisdiction: "EU",
	}

	ids, err := Match(profile)
	if err != nil {
		t.Fatalf("match: %v", err)
	}

	want := []string{"CSRD", "ESRS", "TCFD", "SFDR", "GRI", "CDP"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("matched = %v, want %v", ids, want)
	}
}

func TestMatchSmallPrivateNonEU(t *testing.T) {
	profile := &model.OrganizationProfile{
		Sector:       "retail",
		RevenueBand:  model.RevenueMicro,
		Listed:       boolPtr(false),
		Jurisdiction: "US",
	}

	ids, err := Match(profile)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	// 小型非上市且不在欧盟辖区的组织可能无任何适用框架，这是合法结果
	if len(ids) != 0 {
		t.Errorf("matched = %v, want empty", ids)
	}
}

func TestMatchSmallPrivateEUGetsVSME(t *testing.T) {
	profile := &model.OrganizationProfile{
		Sector:       "retail",
		RevenueBand:  model.RevenueSmall,
		Listed:       boolPtr(false),
		Jurisdiction: "Germany",
		Employees:    30,
	}

	ids, err := Match(profile)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"VSME"}) {
		t.Errorf("matched = %v, want [VSME]", ids)
	}
}

func TestMatchCSRDByThresholds(t *testing.T) {
	profile := &model.OrganizationProfile{
		Sector:         "manufacturing",
		RevenueBand:    model.RevenueMedium,
		Listed:         boolPtr(false),
		Jurisdiction:   "France",
		Employees:      300,
		AnnualTurnover: 45_000_000,
	}

	ids, err := Match(profile)
	if err != nil {
		t.Fatalf("match: %v", err)
	}

	if !containsID(ids, "CSRD") || !containsID(ids, "ESRS") {
		t.Errorf("matched = %v, want CSRD and ESRS present", ids)
	}
	// 达到 CSRD 阈值后不再属于 VSME 适用对象
	if containsID(ids, "VSME") {
		t.Errorf("matched = %v, VSME should not apply", ids)
	}
	// 制造业属于气候敏感行业
	if !containsID(ids, "TCFD") {
		t.Errorf("matched = %v, want TCFD present", ids)
	}
}

func TestMatchListedMicroExemption(t *testing.T) {
	profile := &model.OrganizationProfile{
		Sector:         "technology",
		RevenueBand:    model.RevenueMicro,
		Listed:         boolPtr(true),
		Jurisdiction:   "Netherlands",
		Employees:      5,
		AnnualTurnover: 1_000_000,
	}

	ids, err := Match(profile)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	// 上市微型企业豁免 CSRD，但上市身份仍触发 TCFD/CDP
	if containsID(ids, "CSRD") {
		t.Errorf("matched = %v, CSRD should be exempt", ids)
	}
	if !containsID(ids, "TCFD") || !containsID(ids, "CDP") {
		t.Errorf("matched = %v, want TCFD and CDP present", ids)
	}
}

func TestMatchSASBEnergy(t *testing.T) {
	profile := &model.OrganizationProfile{
		Sector:       "utilities",
		RevenueBand:  model.RevenueMedium,
		Listed:       boolPtr(false),
		Jurisdiction: "US",
	}

	ids, err := Match(profile)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if !containsID(ids, "SASB") {
		t.Errorf("matched = %v, want SASB present", ids)
	}
}

func TestMatchIncompleteProfile(t *testing.T) {
	cases := []struct {
		name    string
		profile *model.OrganizationProfile
		field   string
	}{
		{
			name:    "missing sector",
			profile: &model.OrganizationProfile{RevenueBand: model.RevenueSmall, Listed: boolPtr(false), Jurisdiction: "EU"},
			field:   "sector",
		},
		{
			name:    "missing revenue band",
			profile: &model.OrganizationProfile{Sector: "retail", Listed: boolPtr(false), Jurisdiction: "EU"},
			field:   "revenueBand",
		},
		{
			name:    "missing listed",
			profile: &model.OrganizationProfile{Sector: "retail", RevenueBand: model.RevenueSmall, Jurisdiction: "EU"},
			field:   "listed",
		},
		{
			name:    "missing jurisdiction",
			profile: &model.OrganizationProfile{Sector: "retail", RevenueBand: model.RevenueSmall, Listed: boolPtr(false)},
			field:   "jurisdiction",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Match(tc.profile)
			var incompleteErr *model.IncompleteProfileError
			if !errors.As(err, &incompleteErr) {
				t.Fatalf("expected IncompleteProfileError, got %T: %v", err, err)
			}
			if incompleteErr.Field != tc.field {
				t.Errorf("field = %s, want %s", incompleteErr.Field, tc.field)
			}
		})
	}
}

func TestMatchDeterministic(t *testing.T) {
	profile := &model.OrganizationProfile{
		Sector:       "energy",
		RevenueBand:  model.RevenueLarge,
		Listed:       boolPtr(true),
		Jurisdiction: "Spain",
	}

	first, err := Match(profile)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	second, err := Match(profile)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ: %v vs %v", first, second)
	}
}

func TestCatalogOrderStable(t *testing.T) {
	want := []string{"CSRD", "ESRS", "VSME", "TCFD", "SFDR", "GRI", "SASB", "CDP"}
	got := make([]string, 0, len(Catalog()))
	for _, r := range Catalog() {
		got = append(got, r.ID)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("catalog order = %v, want %v", got, want)
	}
}

func containsID(ids []string, want string) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}
