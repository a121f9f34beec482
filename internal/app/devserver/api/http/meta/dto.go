package meta

import (
	houseAPI "homekeeper/internal/app/devserver/api/http/house"
	"homekeeper/internal/domain/house"
)

type bootstrapOutput struct {
	Body bootstrapResponse
}

type bootstrapResponse struct {
	Profile house.Profile   `json:"profile"`
	Houses  []houseWithView `json:"houses"`
	Summary house.Summary   `json:"summary"`
}

type houseWithView struct {
	House    houseAPI.HouseBody `json:"house"`
	Progress house.Progress     `json:"progress"`
}

type versionOutput struct {
	Body versionResponse
}

type versionResponse struct {
	Version string `json:"version"`
}

type versionCheckInput struct {
	Client string `query:"client" doc:"Версия клиента"`
}

type versionCheckOutput struct {
	Body versionCheckResponse
}

type versionCheckResponse struct {
	UpdateAvailable bool `json:"update_available"`
}
