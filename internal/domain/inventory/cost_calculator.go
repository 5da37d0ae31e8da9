package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost calcula el costo promedio ponderado al recibir cantidad
// en un lote existente (servicio de dominio).
// NuevoCosto = ((CantActual × CostoActual) + (CantEntrada × CostoEntrada)) / (CantActual + CantEntrada)
func WeightedAverageCost(currentQty, currentCost, incomingQty, incomingCost decimal.Decimal) decimal.Decimal {
	sum := currentQty.Add(incomingQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentQty.Mul(currentCost).Add(incomingQty.Mul(incomingCost))
	return num.Div(sum)
}
