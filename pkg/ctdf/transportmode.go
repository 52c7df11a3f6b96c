package ctdf

type TransportMode string

const (
	TransportModeTrain TransportMode = "TRAIN"
	TransportModeBus   TransportMode = "BUS"
)
