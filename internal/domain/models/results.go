package models

import "time"

// SkyResult is the sky at a moment, without houses.
type SkyResult struct {
	Date    string            `json:"data"`
	TimeUTC string            `json:"ora_utc"`
	Moment  time.Time         `json:"momento"`
	Bodies  map[Body]BodyInfo `json:"pianeti"`
	Nodes   Nodes             `json:"nodi_lunari"`
	Lilith  SignPosition      `json:"lilith"`
}

type NatalChart struct {
	Moment       time.Time              `json:"momento"`
	JulianDay    float64                `json:"julian_day"`
	Latitude     float64                `json:"latitudine"`
	Longitude    float64                `json:"longitudine"`
	Bodies       map[Body]BodyInfo      `json:"pianeti"`
	Houses       map[House]SignPosition `json:"case"`
	Ascendant    SignPosition           `json:"ascendente"`
	Midheaven    SignPosition           `json:"medio_cielo"`
	Nodes        Nodes                  `json:"nodi_lunari"`
	Lilith       SignPosition           `json:"lilith"`
	Fortune      *ArabicPart            `json:"parte_fortuna,omitempty"`
	Parts        map[string]ArabicPart  `json:"parti_arabe"`
	Aspects      []Aspect               `json:"aspetti_natali"`
	Patterns     []Pattern              `json:"configurazioni"`
	Distribution Distribution           `json:"distribuzione"`
	Dominant     DominantPlanet         `json:"pianeta_dominante"`
}

type TransitsResult struct {
	Moment  time.Time         `json:"data_calcolo"`
	Bodies  map[Body]BodyInfo `json:"pianeti_transito"`
	Nodes   Nodes             `json:"nodi_transito"`
	Lilith  SignPosition      `json:"lilith_transito"`
	Aspects []Aspect          `json:"aspetti_significativi"`
}

type SolarReturnResult struct {
	Year       int                    `json:"anno"`
	Moment     time.Time              `json:"momento_ritorno"`
	Converged  bool                   `json:"convergente"`
	Iterations int                    `json:"iterazioni"`
	Bodies     map[Body]BodyInfo      `json:"pianeti"`
	Houses     map[House]SignPosition `json:"case"`
	Ascendant  SignPosition           `json:"ascendente_sr"`
	Midheaven  SignPosition           `json:"medio_cielo_sr"`
	Nodes      Nodes                  `json:"nodi"`
}

// PersonSummary is one side of a synastry.
type PersonSummary struct {
	Bodies    map[Body]BodyInfo `json:"pianeti"`
	Ascendant Sign              `json:"ascendente"`
	Sun       Sign              `json:"sole"`
	Moon      Sign              `json:"luna"`
	Venus     Sign              `json:"venere"`
	Mars      Sign              `json:"marte"`
}

type CompatibilityResult struct {
	Person1    PersonSummary `json:"persona1"`
	Person2    PersonSummary `json:"persona2"`
	Synastry   []Aspect      `json:"sinastria"`
	Strengths  []Aspect      `json:"punti_forza"`
	Challenges []Aspect      `json:"sfide"`
}

type CompositeResult struct {
	Bodies       map[Body]SignPosition `json:"pianeti"`
	Ascendant    SignPosition          `json:"ascendente"`
	Midheaven    SignPosition          `json:"medio_cielo"`
	Aspects      []Aspect              `json:"aspetti"`
	Patterns     []Pattern             `json:"configurazioni"`
	Distribution Distribution          `json:"distribuzione"`
	Dominant     DominantPlanet        `json:"pianeta_dominante"`
}

type AnalysisResult struct {
	Bodies       map[Body]BodyInfo     `json:"pianeti"`
	Aspects      []Aspect              `json:"aspetti"`
	Patterns     []Pattern             `json:"configurazioni"`
	Distribution Distribution          `json:"distribuzione"`
	Parts        map[string]ArabicPart `json:"parti_arabe,omitempty"`
	Dominant     *DominantPlanet       `json:"pianeta_dominante,omitempty"`
}
