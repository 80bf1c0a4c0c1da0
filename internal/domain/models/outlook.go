package models

type Outlook struct {
	Yesterday []string `json:"yesterday"`
	Current   []string `json:"current"`
	Future    []string `json:"future"`
	Possible  []string `json:"possible"`
}
