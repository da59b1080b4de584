// seehuhn.de/go/nest - a 2D bitmap nesting engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package nest_test

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"seehuhn.de/go/nest"
	"seehuhn.de/go/nest/internal/fixtures"
)

func TestArrangeTwoUnitSquares(t *testing.T) {
	req := nest.Request{
		Items: []nest.Item{
			{Outline: fixtures.Square(10)},
			{Outline: fixtures.Square(10)},
		},
		Bed: nest.Bed{Kind: nest.BedRectangle, WidthMM: 100, HeightMM: 100},
		Params: nest.Params{
			PrecisionMM: 0.5,
			SpacingMM:   1,
			DeltaMM:     1,
		},
	}
	resp, err := nest.Arrange(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.PerItem[0].Placed || !resp.PerItem[1].Placed {
		t.Fatal("both squares should be placed on a generous plate")
	}

	a := resp.PerItem[0].Translation
	b := resp.PerItem[1].Translation
	dist := math.Hypot(a.X-b.X, a.Y-b.Y)
	if dist < 12 {
		t.Fatalf("centers should be at least 12mm apart, got %g", dist)
	}
}

func TestArrangeAnnularPart(t *testing.T) {
	req := nest.Request{
		Items: []nest.Item{
			{Outline: fixtures.Annulus(20, 8, 64)},
		},
		Bed: nest.Bed{Kind: nest.BedRectangle, WidthMM: 50, HeightMM: 50},
		Params: nest.Params{
			PrecisionMM: 0.5,
			SpacingMM:   1,
			DeltaMM:     1,
		},
	}
	resp, err := nest.Arrange(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.PerItem[0].Placed {
		t.Fatal("the annulus should be placed on a 50x50 plate")
	}
	p := resp.PerItem[0].Translation
	if math.Abs(p.X-25) > 2 || math.Abs(p.Y-25) > 2 {
		t.Fatalf("annulus should be centered near (25,25), got (%g,%g)", p.X, p.Y)
	}
}

func TestArrangeRotationRequired(t *testing.T) {
	rect := fixtures.Rectangle(80, 20)

	noRot, err := nest.Arrange(context.Background(), nest.Request{
		Items: []nest.Item{{Outline: rect}},
		Bed:   nest.Bed{Kind: nest.BedRectangle, WidthMM: 30, HeightMM: 100},
		Params: nest.Params{
			PrecisionMM:    1,
			SpacingMM:      0,
			DeltaMM:        1,
			AllowRotations: false,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if noRot.PerItem[0].Placed {
		t.Fatal("an 80x20 rectangle should not fit a 30x100 plate without rotation")
	}

	withRot, err := nest.Arrange(context.Background(), nest.Request{
		Items: []nest.Item{{Outline: rect}},
		Bed:   nest.Bed{Kind: nest.BedRectangle, WidthMM: 30, HeightMM: 100},
		Params: nest.Params{
			PrecisionMM:    1,
			SpacingMM:      0,
			DeltaMM:        1,
			AllowRotations: true,
			DeltaRRad:      nest.DefaultDeltaR,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !withRot.PerItem[0].Placed {
		t.Fatal("an 80x20 rectangle should fit a 30x100 plate once rotated")
	}
	rot := withRot.PerItem[0].RotationRad
	if math.Abs(rot-math.Pi/2) > 1e-6 && math.Abs(rot-3*math.Pi/2) > 1e-6 {
		t.Fatalf("placement should use a 90-degree rotation, got %g", rot)
	}
}

func TestArrangeCircularPlateExclusion(t *testing.T) {
	req := nest.Request{
		Items: []nest.Item{
			{Outline: fixtures.Square(15)},
			{Outline: fixtures.Square(15)},
		},
		Bed: nest.Bed{Kind: nest.BedCircle, DiameterMM: 20},
		Params: nest.Params{
			PrecisionMM: 0.5,
			SpacingMM:   0,
			DeltaMM:     1,
		},
	}
	resp, err := nest.Arrange(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.PerItem[0].Placed {
		t.Fatal("the first 15x15 square should be placed on a 20mm-diameter circular plate")
	}
	if resp.PerItem[1].Placed {
		t.Fatal("a second 15x15 square should not fit alongside the first on a 20mm circular plate")
	}
}

func TestArrangePriorityDominatesArea(t *testing.T) {
	req := nest.Request{
		Items: []nest.Item{
			{Outline: fixtures.Square(50), Priority: 0},
			{Outline: fixtures.Square(10), Priority: 10},
		},
		Bed: nest.Bed{Kind: nest.BedRectangle, WidthMM: 60, HeightMM: 60},
		Params: nest.Params{
			PrecisionMM: 0.5,
			SpacingMM:   0,
			DeltaMM:     1,
		},
	}
	resp, err := nest.Arrange(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.PerItem[0].Placed || !resp.PerItem[1].Placed {
		t.Fatal("both items should fit on a generous 60x60 plate")
	}

	tight := req
	tight.Bed = nest.Bed{Kind: nest.BedRectangle, WidthMM: 55, HeightMM: 55}
	tightResp, err := nest.Arrange(context.Background(), tight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tightResp.PerItem[1].Placed {
		t.Fatal("the higher-priority small item should always be placed")
	}
}

func TestArrangeDeterminism(t *testing.T) {
	req := nest.Request{
		Items: []nest.Item{
			{Outline: fixtures.Square(10)},
			{Outline: fixtures.Square(15)},
			{Outline: fixtures.FivePointStar(0, 0, 8)},
		},
		Bed: nest.Bed{Kind: nest.BedRectangle, WidthMM: 80, HeightMM: 80},
		Params: nest.Params{
			PrecisionMM: 0.5,
			SpacingMM:   1,
			DeltaMM:     1,
		},
	}
	r1, err := nest.Arrange(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := nest.Arrange(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Fatalf("repeated single-attempt runs should be byte-identical:\n%+v\n%+v", r1, r2)
	}
}

// TestArrangeNoRotationsMeansZeroRotation is property P8.
func TestArrangeNoRotationsMeansZeroRotation(t *testing.T) {
	req := nest.Request{
		Items: []nest.Item{
			{Outline: fixtures.Square(10)},
			{Outline: fixtures.Square(10)},
		},
		Bed: nest.Bed{Kind: nest.BedRectangle, WidthMM: 100, HeightMM: 100},
		Params: nest.Params{
			PrecisionMM:    0.5,
			SpacingMM:      1,
			DeltaMM:        1,
			AllowRotations: false,
		},
	}
	resp, err := nest.Arrange(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range resp.PerItem {
		if p.Placed && p.RotationRad != 0 {
			t.Fatalf("item %d placed with non-zero rotation while AllowRotations=false", i)
		}
	}
}

func TestArrangeInvalidInput(t *testing.T) {
	_, err := nest.Arrange(context.Background(), nest.Request{
		Items: []nest.Item{{Outline: fixtures.Square(10)}},
		Bed:   nest.Bed{Kind: nest.BedRectangle, WidthMM: 100, HeightMM: 100},
		Params: nest.Params{
			PrecisionMM: 0,
		},
	})
	var nerr *nest.Error
	if err == nil {
		t.Fatal("expected an error for non-positive precision")
	}
	if !errors.As(err, &nerr) || nerr.Kind != nest.InvalidInput {
		t.Fatalf("expected a *nest.Error with Kind InvalidInput, got %v", err)
	}
}

func TestArrangePlateOverflowIsInternalError(t *testing.T) {
	_, err := nest.Arrange(context.Background(), nest.Request{
		Items: []nest.Item{{Outline: fixtures.Square(10)}},
		Bed:   nest.Bed{Kind: nest.BedRectangle, WidthMM: 1e18, HeightMM: 100},
		Params: nest.Params{
			PrecisionMM: 1e-9,
		},
	})
	var nerr *nest.Error
	if err == nil {
		t.Fatal("expected an error for a plate that needs an absurd pixel count")
	}
	if !errors.As(err, &nerr) || nerr.Kind != nest.Internal {
		t.Fatalf("expected a *nest.Error with Kind Internal, got %v", err)
	}
}

func TestArrangeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := nest.Request{
		Items: []nest.Item{{Outline: fixtures.Square(10)}},
		Bed:   nest.Bed{Kind: nest.BedRectangle, WidthMM: 100, HeightMM: 100},
		Params: nest.Params{
			PrecisionMM: 0.5,
			SpacingMM:   1,
			DeltaMM:     1,
		},
	}
	resp, err := nest.Arrange(ctx, req)
	if err != nil {
		t.Fatalf("cancellation should not be reported as an error: %v", err)
	}
	if !resp.Cancelled {
		t.Fatal("expected Response.Cancelled to be true")
	}
}
