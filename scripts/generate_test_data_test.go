package main

import (
	"testing"
	"time"
)

func TestBuildDemoFormsCoversEveryDay(t *testing.T) {
	forms := buildDemoForms(2025, time.February, demoEmployees, demoShifts)
	if len(forms) != 28*2 {
		t.Fatalf("expected 56 forms, got %d", len(forms))
	}

	seen := make(map[string]int)
	for _, form := range forms {
		if form.EmployeeName == "" || form.Department == "" || form.Position == "" {
			t.Fatalf("form missing required fields: %+v", form)
		}
		seen[form.WorkDate]++
	}
	if len(seen) != 28 {
		t.Fatalf("expected 28 distinct dates, got %d", len(seen))
	}
	if seen["2025-02-01"] != 2 || seen["2025-02-28"] != 2 {
		t.Fatalf("expected two entries on first and last day, got %v", seen)
	}
}

func TestBuildDemoFormsEmptyInputs(t *testing.T) {
	if forms := buildDemoForms(2025, time.March, nil, demoShifts); forms != nil {
		t.Fatalf("expected nil without employees, got %d forms", len(forms))
	}
}
