package game

import "github.com/Carmen-Shannon/rusteroids/engine/model"

var white = [3]float32{1, 1, 1}

// Wedge is the ship outline as a closed line strip, nose up.
var Wedge = []model.Vertex{
	{Position: [2]float32{0, 20}, Color: white},
	{Position: [2]float32{10, -20}, Color: white},
	{Position: [2]float32{0, -10}, Color: white},
	{Position: [2]float32{-10, -20}, Color: white},
	{Position: [2]float32{0, 20}, Color: white},
}
