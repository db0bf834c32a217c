package spreadsheet

import (
	"fmt"
	"strconv"
	"testing"
)

func BenchmarkLargeCellPopulation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s := NewSpreadsheet()

		for row := 1; row <= 100; row++ {
			for col := 1; col <= 26; col++ {
				id := CellID{Column: col, Row: row}
				_ = s.Set(id, strconv.Itoa(row*col))
			}
		}
	}
}

func BenchmarkFormulaDependencyChain(b *testing.B) {
	s := NewSpreadsheet()

	_ = s.Enter("A1", "1")
	for i := 2; i <= 100; i++ {
		_ = s.Enter(fmt.Sprintf("A%d", i), fmt.Sprintf("=A%d+1", i-1))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Recalculate()
	}
}

func BenchmarkWideDependencyFanOut(b *testing.B) {
	s := NewSpreadsheet()

	_ = s.Enter("A1", "100")
	for i := 2; i <= 500; i++ {
		_ = s.Enter(fmt.Sprintf("B%d", i), "=A1*2")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Enter("A1", strconv.Itoa(i))
	}
}

func BenchmarkComplexNestedFormulas(b *testing.B) {
	s := NewSpreadsheet()

	for i := 1; i <= 20; i++ {
		_ = s.Enter(fmt.Sprintf("A%d", i), strconv.Itoa(i))
		_ = s.Enter(fmt.Sprintf("B%d", i), strconv.Itoa(i*2))
	}
	_ = s.Enter("C1", "=((A1+A2)*(B3-A4)/(A5+1))*(B6+B7-(A8*A9))/2.5")
	_ = s.Enter("D1", "=(C1*C1+B20)/(A20-A19)")
	_ = s.Enter("E1", "=D1-C1*(A1+(B1-(A2+(B2-(A3+B3)))))")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Recalculate()
	}
}

func BenchmarkParseFormula(b *testing.B) {
	formula := "=(A1 + B2 * 3.5) / (C3 - 4) + ZZ999 * (1 + 2 * (3 + 4))"
	for i := 0; i < b.N; i++ {
		if _, err := ParseFormula(formula); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTopologicalSort(b *testing.B) {
	dg := NewDependencyGraph[CellID]()
	for row := 2; row <= 1000; row++ {
		dg.AddEdge(CellID{Column: 1, Row: row - 1}, CellID{Column: 1, Row: row})
		dg.AddEdge(CellID{Column: 1, Row: row - 1}, CellID{Column: 2, Row: row})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dg.TopologicalSort(); err != nil {
			b.Fatal(err)
		}
	}
}
