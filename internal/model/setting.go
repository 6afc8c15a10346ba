package model

// SettingMandatoryLogin is the settings key holding the login policy.
const SettingMandatoryLogin = "mandatory-login"
